package domain

import "time"

// BatchPricedEvent 批量定价完成事件。
type BatchPricedEvent struct {
	BatchID       string    `json:"batch_id"`
	ReferenceDate string    `json:"reference_date"`
	Contracts     int       `json:"contracts"`
	PricedAt      time.Time `json:"priced_at"`
}

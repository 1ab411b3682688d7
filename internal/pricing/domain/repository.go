package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ValuationRecord 一份已完成定价的合约估值记录，供持久化层落库。
type ValuationRecord struct {
	BatchID       string
	Equity        string
	Currency      Currency
	Strike        decimal.Decimal
	ExpiryDate    time.Time
	IsCall        bool
	NPV           float64
	ReferenceDate time.Time
	PricedAt      time.Time
}

// ValuationRepository 估值历史仓储接口，由基础设施层实现。
type ValuationRepository interface {
	SaveBatch(ctx context.Context, records []ValuationRecord) error
	ListByBatch(ctx context.Context, batchID string) ([]ValuationRecord, error)
}

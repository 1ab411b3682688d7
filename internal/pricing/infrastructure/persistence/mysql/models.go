package mysql

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// ValuationModel 估值历史表映射。
type ValuationModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	BatchID       string    `gorm:"column:batch_id;type:varchar(36);index;not null"`
	Equity        string    `gorm:"column:equity;type:varchar(32);index;not null"`
	Currency      string    `gorm:"column:currency;type:varchar(8);not null"`
	Strike        string    `gorm:"column:strike;type:decimal(32,18);not null"`
	ExpiryDate    time.Time `gorm:"column:expiry_date;not null"`
	IsCall        bool      `gorm:"column:is_call;not null"`
	NPV           float64   `gorm:"column:npv;type:decimal(32,18);not null"`
	ReferenceDate time.Time `gorm:"column:reference_date;index;not null"`
	PricedAt      time.Time `gorm:"column:priced_at;not null"`
}

// TableName 指定表名
func (ValuationModel) TableName() string { return "valuations" }

func toValuationModel(r domain.ValuationRecord) ValuationModel {
	return ValuationModel{
		BatchID:       r.BatchID,
		Equity:        r.Equity,
		Currency:      string(r.Currency),
		Strike:        r.Strike.String(),
		ExpiryDate:    r.ExpiryDate,
		IsCall:        r.IsCall,
		NPV:           r.NPV,
		ReferenceDate: r.ReferenceDate,
		PricedAt:      r.PricedAt,
	}
}

func toValuationRecord(m ValuationModel) domain.ValuationRecord {
	strike, _ := decimal.NewFromString(m.Strike)
	return domain.ValuationRecord{
		BatchID:       m.BatchID,
		Equity:        m.Equity,
		Currency:      domain.Currency(m.Currency),
		Strike:        strike,
		ExpiryDate:    m.ExpiryDate,
		IsCall:        m.IsCall,
		NPV:           m.NPV,
		ReferenceDate: m.ReferenceDate,
		PricedAt:      m.PricedAt,
	}
}

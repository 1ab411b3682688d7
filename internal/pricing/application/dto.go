package application

import (
	"fmt"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// 线路层 DTO。逻辑结构与字段名即对外契约，编码方式（JSON over HTTP
// 或 JSONL 文件）由服务前端决定。

// DecimalDTO 定点小数线路表示。
type DecimalDTO struct {
	Units int64 `json:"units"`
	Nanos int32 `json:"nanos"`
}

// DateDTO 公历日期线路表示。
type DateDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// RateDiscountDTO 贴现点。
type RateDiscountDTO struct {
	Date  DateDTO    `json:"date"`
	Value DecimalDTO `json:"value"`
}

// RateCurveDTO 利率曲线记录。
type RateCurveDTO struct {
	Currency  string            `json:"currency"`
	RateType  string            `json:"rate_type"`
	Discounts []RateDiscountDTO `json:"discounts"`
}

// EquityOptionDTO 标的波动率记录。
type EquityOptionDTO struct {
	ID           string       `json:"id"`
	Currency     string       `json:"currency"`
	SpotPrice    DecimalDTO   `json:"spot_price"`
	StrikeDates  []DateDTO    `json:"strike_dates"`
	StrikePrices []DecimalDTO `json:"strike_prices"`
	ImpliedVols  []DecimalDTO `json:"implied_vols"`
}

// MarketDataDTO 市场数据快照。
type MarketDataDTO struct {
	ReferenceDate DateDTO           `json:"reference_date"`
	RateCurves    []RateCurveDTO    `json:"rate_curves"`
	EquityOptions []EquityOptionDTO `json:"equity_options"`
}

// AmericanOptionRequestDTO 单份美式期权请求。
type AmericanOptionRequestDTO struct {
	Equity                string     `json:"equity"`
	Currency              string     `json:"currency"`
	Strike                DecimalDTO `json:"strike"`
	ExpiryDate            DateDTO    `json:"expiry_date"`
	IsCallOption          bool       `json:"is_call_option"`
	ShortPosition         bool       `json:"short_position"`
	ContractAmount        DecimalDTO `json:"contract_amount"`
	BusinessDayConvention string     `json:"business_day_convention"`
	SettlementDays        int32      `json:"settlement_days"`
}

// PricingRequest 一次完整的定价请求：一份市场数据快照加 N 份合约。
type PricingRequest struct {
	MarketData            MarketDataDTO              `json:"marketdata"`
	AmericanOptionRequest []AmericanOptionRequestDTO `json:"american_option_request"`
}

// PricingResponse 定价结果，每份合约一个 NPV，顺序与请求一致。
type PricingResponse struct {
	Value []float64 `json:"value"`
}

func (d DecimalDTO) toDomain() domain.FixedDecimal {
	return domain.FixedDecimal{Units: d.Units, Nanos: d.Nanos}
}

func (d DateDTO) toDomain() domain.CalendarDate {
	return domain.CalendarDate{Year: d.Year, Month: d.Month, Day: d.Day}
}

// toDomain 把线路请求解码为领域快照与合约列表。
// 数值与日期的合法性校验推迟到各构建器内部，这里只做结构映射。
func (r *PricingRequest) toDomain() (domain.MarketDataSnapshot, []domain.OptionRequest) {
	snapshot := domain.MarketDataSnapshot{
		ReferenceDate: r.MarketData.ReferenceDate.toDomain(),
		RateCurves:    make([]domain.RawCurve, 0, len(r.MarketData.RateCurves)),
		EquityOptions: make([]domain.RawVolRecord, 0, len(r.MarketData.EquityOptions)),
	}
	for _, c := range r.MarketData.RateCurves {
		raw := domain.RawCurve{
			Currency:  domain.Currency(c.Currency),
			RateType:  domain.RateType(c.RateType),
			Discounts: make([]domain.RawCurvePoint, 0, len(c.Discounts)),
		}
		for _, p := range c.Discounts {
			raw.Discounts = append(raw.Discounts, domain.RawCurvePoint{
				Date:  p.Date.toDomain(),
				Value: p.Value.toDomain(),
			})
		}
		snapshot.RateCurves = append(snapshot.RateCurves, raw)
	}
	for _, o := range r.MarketData.EquityOptions {
		rec := domain.RawVolRecord{
			ID:           o.ID,
			Currency:     domain.Currency(o.Currency),
			SpotPrice:    o.SpotPrice.toDomain(),
			StrikeDates:  make([]domain.CalendarDate, 0, len(o.StrikeDates)),
			StrikePrices: make([]domain.FixedDecimal, 0, len(o.StrikePrices)),
			ImpliedVols:  make([]domain.FixedDecimal, 0, len(o.ImpliedVols)),
		}
		for _, d := range o.StrikeDates {
			rec.StrikeDates = append(rec.StrikeDates, d.toDomain())
		}
		for _, k := range o.StrikePrices {
			rec.StrikePrices = append(rec.StrikePrices, k.toDomain())
		}
		for _, v := range o.ImpliedVols {
			rec.ImpliedVols = append(rec.ImpliedVols, v.toDomain())
		}
		snapshot.EquityOptions = append(snapshot.EquityOptions, rec)
	}

	requests := make([]domain.OptionRequest, 0, len(r.AmericanOptionRequest))
	for _, o := range r.AmericanOptionRequest {
		requests = append(requests, domain.OptionRequest{
			Equity:                o.Equity,
			Currency:              domain.Currency(o.Currency),
			Strike:                o.Strike.toDomain(),
			ExpiryDate:            o.ExpiryDate.toDomain(),
			IsCall:                o.IsCallOption,
			ShortPosition:         o.ShortPosition,
			ContractAmount:        o.ContractAmount.toDomain(),
			BusinessDayConvention: o.BusinessDayConvention,
			SettlementDays:        o.SettlementDays,
		})
	}
	return snapshot, requests
}

// validateRequests 对合约自身携带的数值与日期做解码期校验。
func validateRequests(requests []domain.OptionRequest) error {
	for i, r := range requests {
		if err := r.Strike.Validate(); err != nil {
			return fmt.Errorf("request %d strike: %w", i, err)
		}
		if err := r.ExpiryDate.Validate(); err != nil {
			return fmt.Errorf("request %d expiry date: %w", i, err)
		}
		if err := r.ContractAmount.Validate(); err != nil {
			return fmt.Errorf("request %d contract amount: %w", i, err)
		}
	}
	return nil
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingService 批量定价编排器。
// 每次调用是一次完整独立的计算：以快照的基准日为估值日，构建一次
// 贴现曲线与波动率曲面，再按请求顺序逐份定价。估值日随参数显式传递，
// 服务自身不持有任何随请求变化的状态，可被任意并发调用。
//
// 失败策略为 fail-fast：遇到第一个错误立即中止整批，绝不返回部分结果。
type PricingService struct {
	engine  *domain.BAWEngine
	history domain.ValuationRepository // 可选，nil 时跳过落库
	events  domain.EventPublisher      // 可选，nil 时跳过事件发布
}

// Option 服务装配选项。
type Option func(*PricingService)

// WithValuationHistory 启用估值历史落库。
func WithValuationHistory(repo domain.ValuationRepository) Option {
	return func(s *PricingService) { s.history = repo }
}

// WithEventPublisher 启用批次完成事件发布。
func WithEventPublisher(pub domain.EventPublisher) Option {
	return func(s *PricingService) { s.events = pub }
}

// NewPricingService 创建定价服务。
func NewPricingService(opts ...Option) *PricingService {
	s := &PricingService{engine: domain.NewBAWEngine()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalcPrices 对一份请求执行批量定价，返回与请求同序的 NPV 列表。
func (s *PricingService) CalcPrices(ctx context.Context, req *PricingRequest) (*PricingResponse, error) {
	snapshot, requests := req.toDomain()

	slog.DebugContext(ctx, "processing pricing request",
		"reference_date", snapshot.ReferenceDate.String(),
		"rate_curves", len(snapshot.RateCurves),
		"equities", len(snapshot.EquityOptions),
		"requests", len(requests))

	if err := validateRequests(requests); err != nil {
		return nil, err
	}

	// 每批构建一次；曲线与曲面相互独立
	curves, err := domain.BuildDiscountCurves(snapshot.ReferenceDate, domain.RateTypeRiskFree, snapshot.RateCurves)
	if err != nil {
		return nil, err
	}
	surfaces, err := domain.BuildVolatilitySurfaces(snapshot.ReferenceDate, snapshot.EquityOptions)
	if err != nil {
		return nil, err
	}

	valuation := snapshot.ReferenceDate.Time()
	values := make([]float64, 0, len(requests))
	for i, r := range requests {
		surface, ok := surfaces[r.Equity]
		if !ok {
			return nil, fmt.Errorf("%w: no marketdata for %s (request %d)", domain.ErrUnknownUnderlying, r.Equity, i)
		}
		curve, ok := curves[r.Currency]
		if !ok {
			return nil, fmt.Errorf("%w: no curve for currency %s (request %d)", domain.ErrUnknownCurrency, r.Currency, i)
		}
		if surface.Currency() != r.Currency {
			return nil, fmt.Errorf("%w: equity %s is %s, request is %s", domain.ErrCurrencyMismatch, r.Equity, surface.Currency(), r.Currency)
		}

		params := domain.AssembleProcess(valuation, r.Strike.Float64(), r.ExpiryDate.Time(), curve, surface)
		npv, err := s.engine.Price(r.IsCall, params)
		if err != nil {
			return nil, fmt.Errorf("pricing %s (request %d): %w", r.Equity, i, err)
		}
		values = append(values, npv)
	}

	// 落库与事件发布是旁路：NPV 已经算对，失败只记日志不影响响应
	s.record(ctx, snapshot, requests, values)

	return &PricingResponse{Value: values}, nil
}

func (s *PricingService) record(ctx context.Context, snapshot domain.MarketDataSnapshot, requests []domain.OptionRequest, values []float64) {
	if s.history == nil && s.events == nil {
		return
	}

	batchID := uuid.New().String()
	now := time.Now()

	if s.history != nil {
		records := make([]domain.ValuationRecord, 0, len(requests))
		for i, r := range requests {
			records = append(records, domain.ValuationRecord{
				BatchID:       batchID,
				Equity:        r.Equity,
				Currency:      r.Currency,
				Strike:        r.Strike.Decimal(),
				ExpiryDate:    r.ExpiryDate.Time(),
				IsCall:        r.IsCall,
				NPV:           values[i],
				ReferenceDate: snapshot.ReferenceDate.Time(),
				PricedAt:      now,
			})
		}
		if err := s.history.SaveBatch(ctx, records); err != nil {
			slog.ErrorContext(ctx, "failed to persist valuation history", "batch_id", batchID, "error", err)
		}
	}

	if s.events != nil {
		event := domain.BatchPricedEvent{
			BatchID:       batchID,
			ReferenceDate: snapshot.ReferenceDate.String(),
			Contracts:     len(requests),
			PricedAt:      now,
		}
		if err := s.events.PublishBatchPriced(ctx, event); err != nil {
			slog.ErrorContext(ctx, "failed to publish batch priced event", "batch_id", batchID, "error", err)
		}
	}
}

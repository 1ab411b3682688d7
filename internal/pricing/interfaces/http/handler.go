// 包 http 提供定价服务的 HTTP 接口
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionpricing/internal/pricing/application"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// PricingHandler HTTP 处理器。
// 通过准入信号量限制同时执行的定价计算数量，超出上限的请求排队等待
// 而不是被拒绝；连接接入由外层监听器单独限制。
type PricingHandler struct {
	app *application.PricingService
	sem chan struct{}
	m   *metrics.Metrics
}

// NewPricingHandler 创建处理器，maxConcurrent 为并发计算上限。
func NewPricingHandler(app *application.PricingService, maxConcurrent int, m *metrics.Metrics) *PricingHandler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &PricingHandler{
		app: app,
		sem: make(chan struct{}, maxConcurrent),
		m:   m,
	}
}

// RegisterRoutes 将处理器方法绑定到 Gin 路由引擎。
func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/calc-prices", h.CalcPrices)
	}
}

// CalcPrices 同步一元定价操作：一份市场数据快照加 N 份合约，
// 返回与请求同序的 NPV 列表，或单个批次级失败。
func (h *PricingHandler) CalcPrices(c *gin.Context) {
	var req application.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 准入：排队等待空位，计算一旦开始不再取消
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	if h.m != nil {
		h.m.CalcInFlight.Inc()
		defer h.m.CalcInFlight.Dec()
	}

	resp, err := h.app.CalcPrices(c.Request.Context(), &req)
	if err != nil {
		if h.m != nil {
			h.m.PricingErrors.WithLabelValues(errKind(err)).Inc()
		}
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if h.m != nil {
		h.m.BatchesTotal.Inc()
		h.m.OptionsPriced.Add(float64(len(resp.Value)))
		h.m.BatchSize.Observe(float64(len(req.AmericanOptionRequest)))
	}
	c.JSON(http.StatusOK, resp)
}

// statusFor 把领域错误种类映射到 HTTP 状态码。
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedDecimal), errors.Is(err, domain.ErrMalformedDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownUnderlying),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errKind 错误种类的指标标签。
func errKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedDecimal):
		return "malformed_decimal"
	case errors.Is(err, domain.ErrMalformedDate):
		return "malformed_date"
	case errors.Is(err, domain.ErrUnknownUnderlying):
		return "unknown_underlying"
	case errors.Is(err, domain.ErrUnknownCurrency):
		return "unknown_currency"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrNumericDivergence):
		return "numeric_divergence"
	default:
		return "other"
	}
}

package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DiscountCurve 按货币构建的贴现曲线。
// 节点为 (时间, 贴现因子)，基准日锚点 (referenceDate, 1.0) 固定在首位，
// 节点之间按对数线性插值。构建后不可变，生命周期为一个市场数据快照。
//
// 已知限制：构建时不校验节点日期或贴现因子的单调性，乱序或非单调输入
// 会被原样接受，插值结果可能没有金融意义。
type DiscountCurve struct {
	currency  Currency
	reference time.Time
	times     []float64 // Act/360 年化时间轴，times[0] == 0
	logDFs    []float64 // 对应节点贴现因子的自然对数，logDFs[0] == 0
}

// BuildDiscountCurves 从原始曲线记录构建货币到贴现曲线的映射。
// 只保留 rateType 匹配的曲线；同一货币出现多条时，后处理的覆盖先处理的。
func BuildDiscountCurves(reference CalendarDate, rateType RateType, rawCurves []RawCurve) (map[Currency]*DiscountCurve, error) {
	if err := reference.Validate(); err != nil {
		return nil, fmt.Errorf("reference date: %w", err)
	}
	refTime := reference.Time()

	curves := make(map[Currency]*DiscountCurve, len(rawCurves))
	for _, raw := range rawCurves {
		if raw.RateType != rateType {
			continue
		}
		c := &DiscountCurve{
			currency:  raw.Currency,
			reference: refTime,
			times:     make([]float64, 0, len(raw.Discounts)+1),
			logDFs:    make([]float64, 0, len(raw.Discounts)+1),
		}
		c.times = append(c.times, 0)
		c.logDFs = append(c.logDFs, 0) // ln(1.0)
		for _, p := range raw.Discounts {
			if err := p.Date.Validate(); err != nil {
				return nil, fmt.Errorf("curve %s discount date: %w", raw.Currency, err)
			}
			if err := p.Value.Validate(); err != nil {
				return nil, fmt.Errorf("curve %s discount factor: %w", raw.Currency, err)
			}
			c.times = append(c.times, yearFractionAct360(refTime, p.Date.Time()))
			c.logDFs = append(c.logDFs, math.Log(p.Value.Float64()))
		}
		curves[raw.Currency] = c
	}
	return curves, nil
}

// Currency 曲线所属货币。
func (c *DiscountCurve) Currency() Currency { return c.currency }

// ReferenceDate 曲线基准日。
func (c *DiscountCurve) ReferenceDate() time.Time { return c.reference }

// DiscountFactor 查询指定日期的贴现因子。
// 基准日及其之前返回 1.0；节点之间对数线性插值；超出最后一个节点时
// 沿末段斜率外推。
func (c *DiscountCurve) DiscountFactor(at time.Time) float64 {
	t := yearFractionAct360(c.reference, at)
	if t <= 0 {
		return 1.0
	}
	n := len(c.times)
	if n == 1 {
		return 1.0
	}
	// 第一个 times[i] >= t 的节点
	i := sort.SearchFloat64s(c.times, t)
	if i < n && c.times[i] == t {
		return math.Exp(c.logDFs[i])
	}
	if i >= n {
		i = n - 1 // 末段外推
	}
	lo, hi := i-1, i
	span := c.times[hi] - c.times[lo]
	if span == 0 {
		return math.Exp(c.logDFs[hi])
	}
	w := (t - c.times[lo]) / span
	return math.Exp(c.logDFs[lo] + w*(c.logDFs[hi]-c.logDFs[lo]))
}

// FlatRate 返回基准日到 expiry 之间隐含的连续复利无风险利率。
// t 为 Actual/365 年化期限，由调用方计算并保证为正。
func (c *DiscountCurve) FlatRate(expiry time.Time, t float64) float64 {
	return -math.Log(c.DiscountFactor(expiry)) / t
}

package domain

import "time"

// ProcessParams 一次定价调用所需的全部参数集，
// 由现价、波动率曲面、贴现曲线和固定为零的股息率装配而成。
// 估值日显式传入，绝不依赖任何进程级共享状态。
type ProcessParams struct {
	Spot          float64
	Strike        float64
	TimeToExpiry  float64 // Actual/365 年化
	Rate          float64 // 连续复利无风险利率
	DividendYield float64 // 固定为 0
	Vol           float64
}

// AssembleProcess 为单份合约装配 Black-Scholes-Merton 过程参数。
// valuation 为该批次的估值日；TimeToExpiry <= 0 时利率与波动率无意义，
// 置零并由定价引擎按内在价值处理。
func AssembleProcess(valuation time.Time, strike float64, expiry time.Time, curve *DiscountCurve, surface *VolatilitySurface) ProcessParams {
	p := ProcessParams{
		Spot:          surface.Spot(),
		Strike:        strike,
		TimeToExpiry:  yearFractionAct365(valuation, expiry),
		DividendYield: 0,
	}
	if p.TimeToExpiry > 0 {
		p.Rate = curve.FlatRate(expiry, p.TimeToExpiry)
		p.Vol = surface.Vol(strike, expiry)
	}
	return p
}

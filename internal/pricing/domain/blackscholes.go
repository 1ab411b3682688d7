package domain

import "math"

// EuropeanValue 按 Black-Scholes 闭式公式计算欧式期权价值。
func EuropeanValue(isCall bool, p ProcessParams) float64 {
	s, k, t, r, q, v := p.Spot, p.Strike, p.TimeToExpiry, p.Rate, p.DividendYield, p.Vol
	if t <= 0 {
		return intrinsicValue(isCall, s, k)
	}
	if v <= 0 {
		// 零波动率退化为贴现后的远期内在价值
		fwd := s*math.Exp(-q*t) - k*math.Exp(-r*t)
		if !isCall {
			fwd = -fwd
		}
		return math.Max(0, fwd)
	}

	vsqt := v * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*v*v)*t) / vsqt
	d2 := d1 - vsqt

	if isCall {
		return s*math.Exp(-q*t)*normCdf(d1) - k*math.Exp(-r*t)*normCdf(d2)
	}
	return k*math.Exp(-r*t)*normCdf(-d2) - s*math.Exp(-q*t)*normCdf(-d1)
}

// intrinsicValue 立即行权价值。
func intrinsicValue(isCall bool, spot, strike float64) float64 {
	if isCall {
		return math.Max(0, spot-strike)
	}
	return math.Max(0, strike-spot)
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

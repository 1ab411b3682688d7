package domain

import (
	"fmt"
	"math"
)

const (
	defaultMaxIterations = 50
	defaultTolerance     = 1e-6
)

// BAWEngine 基于 Barone-Adesi-Whaley 二次近似的美式期权定价引擎：
// 美式价值 = 欧式闭式价值 + 提前行权溢价。这是整个核心中唯一把波动率、
// 利率和期限送入非线性求解器的路径，每份合约请求调用一次。
type BAWEngine struct {
	maxIterations int
	tolerance     float64
}

// NewBAWEngine 创建引擎，牛顿迭代上限 50 次，收敛容差 1e-6。
func NewBAWEngine() *BAWEngine {
	return &BAWEngine{maxIterations: defaultMaxIterations, tolerance: defaultTolerance}
}

// Price 计算单份美式期权的现值。
//
// 股息率固定为零时，美式看涨期权提前行权永远不是最优的，其价值与欧式
// 看涨完全相等，直接跳过溢价计算。看跌期权通过牛顿迭代求解立即行权与
// 持有价值相等的临界价格，再按分段公式叠加提前行权溢价；迭代在预算内
// 未收敛时返回 ErrNumericDivergence 而不是未收敛的值。
// 返回值不为负，并以内在价值为数值下限。
func (e *BAWEngine) Price(isCall bool, p ProcessParams) (float64, error) {
	intrinsic := intrinsicValue(isCall, p.Spot, p.Strike)
	if p.TimeToExpiry <= 0 {
		return intrinsic, nil
	}

	european := EuropeanValue(isCall, p)
	if isCall {
		// q = 0：美式看涨 == 欧式看涨
		return math.Max(european, intrinsic), nil
	}
	if p.Rate <= 0 || p.Vol <= 0 {
		// 无贴现收益（或退化波动率）时看跌提前行权溢价为零
		return math.Max(european, intrinsic), nil
	}

	value, err := e.americanPut(p, european)
	if err != nil {
		return 0, err
	}
	return math.Max(value, intrinsic), nil
}

// americanPut 按 BAW 构造计算美式看跌价值。
func (e *BAWEngine) americanPut(p ProcessParams, european float64) (float64, error) {
	s, k, t, r, q, v := p.Spot, p.Strike, p.TimeToExpiry, p.Rate, p.DividendYield, p.Vol
	b := r - q // 持有成本

	sk, q1, err := e.criticalPutPrice(p)
	if err != nil {
		return 0, err
	}
	if s <= sk {
		// 临界价格之下立即行权
		return k - s, nil
	}

	vsqt := v * math.Sqrt(t)
	d1 := (math.Log(sk/k) + (b+0.5*v*v)*t) / vsqt
	a1 := -(sk / q1) * (1 - math.Exp((b-r)*t)*normCdf(-d1))
	return european + a1*math.Pow(s/sk, q1), nil
}

// criticalPutPrice 牛顿迭代求解看跌期权的临界标的价格 S*，
// 即立即行权价值与持有价值相等的点。返回 S* 与二次近似的负根 q1。
func (e *BAWEngine) criticalPutPrice(p ProcessParams) (float64, float64, error) {
	k, t, r, q, v := p.Strike, p.TimeToExpiry, p.Rate, p.DividendYield, p.Vol
	b := r - q

	vsqt := v * math.Sqrt(t)
	n := 2 * b / (v * v)
	m := 2 * r / (v * v)
	kt := 1 - math.Exp(-r*t)
	q1 := (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*m/kt)) / 2

	// 初始估计：无穷期限临界价格向有限期限回拉
	q1u := (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*m)) / 2
	su := k / (1 - 1/q1u)
	h1 := (b*t - 2*vsqt) * k / (k - su)
	si := su + (k-su)*math.Exp(h1)

	ebrt := math.Exp((b - r) * t)
	for iter := 0; iter < e.maxIterations; iter++ {
		if !(si > 0) || math.IsNaN(si) {
			return 0, 0, fmt.Errorf("%w: critical put price iteration produced %v", ErrNumericDivergence, si)
		}
		trial := p
		trial.Spot = si
		d1 := (math.Log(si/k) + (b+0.5*v*v)*t) / vsqt
		lhs := k - si
		rhs := EuropeanValue(false, trial) - (1-ebrt*normCdf(-d1))*si/q1
		if math.Abs(lhs-rhs)/k < e.tolerance {
			return si, q1, nil
		}
		bi := -ebrt*normCdf(-d1)*(1-1/q1) - (1+ebrt*normPdf(-d1)/vsqt)/q1
		si = (k - rhs + bi*si) / (1 + bi)
	}
	return 0, 0, fmt.Errorf("%w: critical put price not found within %d iterations", ErrNumericDivergence, e.maxIterations)
}

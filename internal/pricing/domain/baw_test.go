package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmericanCallEqualsEuropean(t *testing.T) {
	engine := NewBAWEngine()
	// 零股息率下美式看涨提前行权永远不是最优的
	for _, spot := range []float64{80, 100, 120} {
		for _, vol := range []float64{0.1, 0.3} {
			for _, rate := range []float64{0.01, 0.08} {
				p := ProcessParams{Spot: spot, Strike: 100, TimeToExpiry: 0.75, Rate: rate, Vol: vol}
				got, err := engine.Price(true, p)
				require.NoError(t, err)
				assert.InDelta(t, EuropeanValue(true, p), got, 1e-8,
					"spot=%v vol=%v rate=%v", spot, vol, rate)
			}
		}
	}
}

func TestAmericanPutPremiumNonNegative(t *testing.T) {
	engine := NewBAWEngine()
	for _, spot := range []float64{85, 95, 100, 105, 120} {
		for _, ttm := range []float64{0.25, 1.0, 2.0} {
			for _, vol := range []float64{0.1, 0.2, 0.4} {
				for _, rate := range []float64{0.02, 0.06} {
					p := ProcessParams{Spot: spot, Strike: 100, TimeToExpiry: ttm, Rate: rate, Vol: vol}
					got, err := engine.Price(false, p)
					require.NoError(t, err)
					european := EuropeanValue(false, p)
					assert.GreaterOrEqual(t, got+1e-9, european,
						"spot=%v ttm=%v vol=%v rate=%v", spot, ttm, vol, rate)
					assert.GreaterOrEqual(t, got+1e-9, intrinsicValue(false, spot, 100))
				}
			}
		}
	}
}

func TestDeepInTheMoneyPutExercisesImmediately(t *testing.T) {
	engine := NewBAWEngine()
	p := ProcessParams{Spot: 20, Strike: 100, TimeToExpiry: 1.0, Rate: 0.08, Vol: 0.2}
	got, err := engine.Price(false, p)
	require.NoError(t, err)
	// 远低于临界价格时价值就是立即行权价值
	assert.InDelta(t, 80.0, got, 1e-9)
}

func TestExpiredOptionReturnsIntrinsic(t *testing.T) {
	engine := NewBAWEngine()

	got, err := engine.Price(false, ProcessParams{Spot: 90, Strike: 100, TimeToExpiry: 0})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	got, err = engine.Price(true, ProcessParams{Spot: 90, Strike: 100, TimeToExpiry: -0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestZeroRatePutEqualsEuropean(t *testing.T) {
	engine := NewBAWEngine()
	// 无贴现收益时看跌提前行权溢价为零
	p := ProcessParams{Spot: 100, Strike: 100, TimeToExpiry: 1.0, Rate: 0, Vol: 0.2}
	got, err := engine.Price(false, p)
	require.NoError(t, err)
	assert.InDelta(t, EuropeanValue(false, p), got, 1e-12)
}

// 端到端：基准日 2021-02-05，USD 曲线 (2022-02-08 -> 0.94)，GOOG 现价 1500，
// 平坦波动率 0.15，美式看跌 行权价 1500 到期 2022-05-21。
func TestAmericanPutEndToEnd(t *testing.T) {
	ref := CalendarDate{Year: 2021, Month: 2, Day: 5}

	curves, err := BuildDiscountCurves(ref, RateTypeRiskFree, []RawCurve{{
		Currency: CurrencyUSD,
		RateType: RateTypeRiskFree,
		Discounts: []RawCurvePoint{
			{Date: CalendarDate{Year: 2022, Month: 2, Day: 8}, Value: dec(0, 940000000)},
		},
	}})
	require.NoError(t, err)

	rec := RawVolRecord{
		ID:        "GOOG",
		Currency:  CurrencyUSD,
		SpotPrice: dec(1500, 0),
		StrikeDates: []CalendarDate{
			{Year: 2022, Month: 2, Day: 18},
			{Year: 2022, Month: 5, Day: 21},
		},
		StrikePrices: []FixedDecimal{dec(1450, 0), dec(1500, 0), dec(1550, 0)},
		ImpliedVols: []FixedDecimal{
			dec(0, 150000000), dec(0, 150000000), dec(0, 150000000),
			dec(0, 150000000), dec(0, 150000000), dec(0, 150000000),
		},
	}
	surfaces, err := BuildVolatilitySurfaces(ref, []RawVolRecord{rec})
	require.NoError(t, err)

	expiry := CalendarDate{Year: 2022, Month: 5, Day: 21}
	params := AssembleProcess(ref.Time(), 1500, expiry.Time(), curves[CurrencyUSD], surfaces["GOOG"])

	assert.InDelta(t, 0.15, params.Vol, 1e-12)
	assert.Greater(t, params.Rate, 0.0)
	assert.Greater(t, params.TimeToExpiry, 1.0)

	engine := NewBAWEngine()
	american, err := engine.Price(false, params)
	require.NoError(t, err)

	european := EuropeanValue(false, params)
	// 美式看跌严格大于同参数的欧式看跌
	assert.Greater(t, american, european)
	assert.Greater(t, european, 0.0)
}

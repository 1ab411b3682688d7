package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volRecord() RawVolRecord {
	// 2 个到期日 x 3 个行权价，扁平序列按到期日优先排列：
	// [v00 v01 v02 v10 v11 v12]，元素 j*3+i 对应行权价 i、到期日 j
	return RawVolRecord{
		ID:        "GOOG",
		Currency:  CurrencyUSD,
		SpotPrice: dec(1500, 0),
		StrikeDates: []CalendarDate{
			{Year: 2022, Month: 2, Day: 18},
			{Year: 2022, Month: 5, Day: 21},
		},
		StrikePrices: []FixedDecimal{dec(1450, 0), dec(1500, 0), dec(1550, 0)},
		ImpliedVols: []FixedDecimal{
			dec(0, 110000000), dec(0, 120000000), dec(0, 130000000), // j=0
			dec(0, 210000000), dec(0, 220000000), dec(0, 230000000), // j=1
		},
	}
}

func TestBuildVolatilitySurfacesGridIndexing(t *testing.T) {
	ref := CalendarDate{Year: 2021, Month: 2, Day: 5}
	surfaces, err := BuildVolatilitySurfaces(ref, []RawVolRecord{volRecord()})
	require.NoError(t, err)
	require.Contains(t, surfaces, "GOOG")

	s := surfaces["GOOG"]
	assert.Equal(t, CurrencyUSD, s.Currency())
	assert.Equal(t, 1500.0, s.Spot())

	e0 := time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC)
	e1 := time.Date(2022, 5, 21, 0, 0, 0, 0, time.UTC)

	// grid[strike=1500][expiry=e1] 必须等于 v11
	assert.InDelta(t, 0.22, s.Vol(1500, e1), 1e-12)
	assert.InDelta(t, 0.11, s.Vol(1450, e0), 1e-12)
	assert.InDelta(t, 0.13, s.Vol(1550, e0), 1e-12)
	assert.InDelta(t, 0.23, s.Vol(1550, e1), 1e-12)
}

func TestVolatilitySurfaceExtrapolation(t *testing.T) {
	ref := CalendarDate{Year: 2021, Month: 2, Day: 5}
	surfaces, err := BuildVolatilitySurfaces(ref, []RawVolRecord{volRecord()})
	require.NoError(t, err)
	s := surfaces["GOOG"]

	e0 := time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC)
	e1 := time.Date(2022, 5, 21, 0, 0, 0, 0, time.UTC)

	// 越界查询夹取到最近边缘而不是报错
	assert.InDelta(t, 0.11, s.Vol(1000, e0), 1e-12)
	assert.InDelta(t, 0.13, s.Vol(2000, e0), 1e-12)
	assert.InDelta(t, 0.21, s.Vol(1450, e1.AddDate(1, 0, 0)), 1e-12)
	assert.InDelta(t, 0.11, s.Vol(1450, ref.Time()), 1e-12)

	// 网格内插值落在相邻节点之间
	v := s.Vol(1475, e0)
	assert.Greater(t, v, 0.11)
	assert.Less(t, v, 0.12)
}

func TestBuildVolatilitySurfacesMisSizedGrid(t *testing.T) {
	ref := CalendarDate{Year: 2021, Month: 2, Day: 5}
	rec := volRecord()
	rec.ImpliedVols = rec.ImpliedVols[:5]

	_, err := BuildVolatilitySurfaces(ref, []RawVolRecord{rec})
	require.ErrorIs(t, err, ErrMalformedDecimal)
}

func TestBuildVolatilitySurfacesMalformedVol(t *testing.T) {
	ref := CalendarDate{Year: 2021, Month: 2, Day: 5}
	rec := volRecord()
	rec.ImpliedVols[3] = FixedDecimal{Units: -1, Nanos: 5}

	_, err := BuildVolatilitySurfaces(ref, []RawVolRecord{rec})
	require.ErrorIs(t, err, ErrMalformedDecimal)
}

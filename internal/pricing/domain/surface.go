package domain

import (
	"fmt"
	"time"
)

// VolatilitySurface 按标的构建的隐含波动率曲面。
// 网格为 行权价 × 到期日，网格内双线性插值，网格外取最近边缘值
// （外推开启，越界查询不报错）。构建后不可变，生命周期为一个快照。
type VolatilitySurface struct {
	id        string
	currency  Currency
	spot      float64
	reference time.Time
	strikes   []float64
	expiries  []float64   // Act/365 年化时间轴
	vols      [][]float64 // vols[strikeIdx][expiryIdx]
}

// BuildVolatilitySurfaces 从原始波动率记录构建标的到曲面的映射。
// 扁平化的 ImpliedVols 按到期日优先排列：元素 j*len(strikes)+i
// 对应第 i 个行权价、第 j 个到期日。长度不匹配在构建期报错。
func BuildVolatilitySurfaces(reference CalendarDate, records []RawVolRecord) (map[string]*VolatilitySurface, error) {
	if err := reference.Validate(); err != nil {
		return nil, fmt.Errorf("reference date: %w", err)
	}
	refTime := reference.Time()

	surfaces := make(map[string]*VolatilitySurface, len(records))
	for _, rec := range records {
		if err := rec.SpotPrice.Validate(); err != nil {
			return nil, fmt.Errorf("equity %s spot price: %w", rec.ID, err)
		}
		ns, ne := len(rec.StrikePrices), len(rec.StrikeDates)
		if len(rec.ImpliedVols) != ns*ne {
			return nil, fmt.Errorf("%w: equity %s implied vol grid has %d entries, want %d strikes x %d expirations",
				ErrMalformedDecimal, rec.ID, len(rec.ImpliedVols), ns, ne)
		}

		s := &VolatilitySurface{
			id:        rec.ID,
			currency:  rec.Currency,
			spot:      rec.SpotPrice.Float64(),
			reference: refTime,
			strikes:   make([]float64, ns),
			expiries:  make([]float64, ne),
			vols:      make([][]float64, ns),
		}
		for i, k := range rec.StrikePrices {
			if err := k.Validate(); err != nil {
				return nil, fmt.Errorf("equity %s strike price: %w", rec.ID, err)
			}
			s.strikes[i] = k.Float64()
		}
		for j, d := range rec.StrikeDates {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("equity %s strike date: %w", rec.ID, err)
			}
			s.expiries[j] = yearFractionAct365(refTime, d.Time())
		}
		for i := 0; i < ns; i++ {
			s.vols[i] = make([]float64, ne)
			for j := 0; j < ne; j++ {
				v := rec.ImpliedVols[j*ns+i]
				if err := v.Validate(); err != nil {
					return nil, fmt.Errorf("equity %s implied vol: %w", rec.ID, err)
				}
				s.vols[i][j] = v.Float64()
			}
		}
		surfaces[rec.ID] = s
	}
	return surfaces, nil
}

// ID 标的标识。
func (s *VolatilitySurface) ID() string { return s.id }

// Currency 曲面所属货币。
func (s *VolatilitySurface) Currency() Currency { return s.currency }

// Spot 标的现价。
func (s *VolatilitySurface) Spot() float64 { return s.spot }

// Vol 查询 (行权价, 到期日) 处的隐含波动率。
// 网格内双线性插值，越界时夹取到最近的边缘。
func (s *VolatilitySurface) Vol(strike float64, expiry time.Time) float64 {
	t := yearFractionAct365(s.reference, expiry)

	i0, i1, wk := bracket(s.strikes, strike)
	j0, j1, wt := bracket(s.expiries, t)

	v00 := s.vols[i0][j0]
	v10 := s.vols[i1][j0]
	v01 := s.vols[i0][j1]
	v11 := s.vols[i1][j1]

	lo := v00 + wk*(v10-v00)
	hi := v01 + wk*(v11-v01)
	return lo + wt*(hi-lo)
}

// bracket 在有序轴上定位 x 的相邻节点及插值权重，越界时夹取到边缘。
func bracket(axis []float64, x float64) (lo, hi int, w float64) {
	n := len(axis)
	if n == 1 || x <= axis[0] {
		return 0, 0, 0
	}
	if x >= axis[n-1] {
		return n - 1, n - 1, 0
	}
	hi = 1
	for hi < n-1 && axis[hi] < x {
		hi++
	}
	lo = hi - 1
	span := axis[hi] - axis[lo]
	if span == 0 {
		return lo, hi, 0
	}
	return lo, hi, (x - axis[lo]) / span
}

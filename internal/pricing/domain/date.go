package domain

import (
	"fmt"
	"time"
)

// CalendarDate 公历日期，无时区。构造后不可变。
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// Validate 校验日期合法性（月份、当月天数）。
func (d CalendarDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrMalformedDate, d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("%w: day %d", ErrMalformedDate, d.Day)
	}
	// time.Date 会把非法日期归一化（如 2 月 30 日变成 3 月），回读验证
	t := d.Time()
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrMalformedDate, d.Year, d.Month, d.Day)
	}
	return nil
}

// Time 转换为 UTC 零点时刻。
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

const (
	daysPerYearAct365 = 365.0
	daysPerYearAct360 = 360.0
)

// yearFractionAct365 按 Actual/365 Fixed 计算年化期限，用于期权到期时间。
func yearFractionAct365(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYearAct365
}

// yearFractionAct360 按 Actual/360 计算年化期限，用于贴现曲线时间轴。
func yearFractionAct360(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYearAct360
}

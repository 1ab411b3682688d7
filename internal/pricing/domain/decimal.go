package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const nanosPerUnit = 1_000_000_000

// FixedDecimal 定点小数，值 = Units + Nanos * 1e-9。
// Nanos 取值范围 [-999999999, 999999999]，两者均非零时符号必须一致。
// 由线路格式解码得到，构造后不可变。
type FixedDecimal struct {
	Units int64
	Nanos int32
}

// Validate 校验 nanos 范围与符号一致性，非法输入在解码期报错而不是等到参与运算。
func (d FixedDecimal) Validate() error {
	if d.Nanos <= -nanosPerUnit || d.Nanos >= nanosPerUnit {
		return fmt.Errorf("%w: nanos %d out of range", ErrMalformedDecimal, d.Nanos)
	}
	if (d.Units > 0 && d.Nanos < 0) || (d.Units < 0 && d.Nanos > 0) {
		return fmt.Errorf("%w: units %d and nanos %d have opposite signs", ErrMalformedDecimal, d.Units, d.Nanos)
	}
	return nil
}

// Float64 转换为 IEEE-754 双精度浮点数，供数学层使用。
func (d FixedDecimal) Float64() float64 {
	return float64(d.Units) + float64(d.Nanos)*1e-9
}

// Decimal 无损转换为十进制小数，供持久化与展示使用。
func (d FixedDecimal) Decimal() decimal.Decimal {
	return decimal.New(d.Units, 0).Add(decimal.New(int64(d.Nanos), -9))
}

func (d FixedDecimal) String() string {
	return d.Decimal().String()
}

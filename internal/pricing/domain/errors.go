package domain

import "errors"

// 定价核心错误类型。所有错误都是批次致命的：首个错误即中止整批计算，
// 不返回部分结果。调用方通过 errors.Is 区分错误种类。
var (
	// ErrMalformedDecimal 定点小数解码失败（nanos 越界或符号不一致）
	ErrMalformedDecimal = errors.New("malformed decimal")
	// ErrMalformedDate 日历日期解码失败
	ErrMalformedDate = errors.New("malformed date")
	// ErrUnknownUnderlying 请求的标的没有对应的波动率曲面
	ErrUnknownUnderlying = errors.New("unknown underlying")
	// ErrUnknownCurrency 请求的货币没有对应的贴现曲线
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrCurrencyMismatch 曲面货币与请求货币不一致
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrNumericDivergence 临界价格求根超出迭代预算仍未收敛
	ErrNumericDivergence = errors.New("numeric divergence")
)

package domain

// Currency 货币代码。相等性为精确比较，核心内部不做任何隐式换算。
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
)

// RateType 利率曲线类型，仅无风险曲线参与定价。
type RateType string

const RateTypeRiskFree RateType = "RISK_FREE_CURVE"

// RawCurvePoint 原始贴现点 (日期, 贴现因子)。
type RawCurvePoint struct {
	Date  CalendarDate
	Value FixedDecimal
}

// RawCurve 原始利率曲线记录。
type RawCurve struct {
	Currency  Currency
	RateType  RateType
	Discounts []RawCurvePoint
}

// RawVolRecord 原始隐含波动率记录。
// ImpliedVols 长度必须等于 len(StrikePrices) * len(StrikeDates)，
// 排列为到期日优先：元素 j*len(strikes)+i 对应第 i 个行权价、第 j 个到期日。
type RawVolRecord struct {
	ID           string
	Currency     Currency
	SpotPrice    FixedDecimal
	StrikeDates  []CalendarDate
	StrikePrices []FixedDecimal
	ImpliedVols  []FixedDecimal
}

// MarketDataSnapshot 一次批量定价使用的市场数据快照，接收后不可变。
// ReferenceDate 是整批唯一的估值基准日，曲线、曲面构建与定价统一使用它。
type MarketDataSnapshot struct {
	ReferenceDate CalendarDate
	RateCurves    []RawCurve
	EquityOptions []RawVolRecord
}

// OptionRequest 单份美式期权合约请求。
// ShortPosition、ContractAmount、BusinessDayConvention、SettlementDays
// 随请求携带但不参与定价算法本身。
type OptionRequest struct {
	Equity                string
	Currency              Currency
	Strike                FixedDecimal
	ExpiryDate            CalendarDate
	IsCall                bool
	ShortPosition         bool
	ContractAmount        FixedDecimal
	BusinessDayConvention string
	SettlementDays        int32
}

package model

import "github.com/shopspring/decimal"

// TransactionType 交易类型
type TransactionType string

const (
	TypeRevenue TransactionType = "revenue"
	TypeExpense TransactionType = "expense"
)

// BenchmarkStatus 与行业基准对比结果
type BenchmarkStatus string

const (
	StatusAboveAverage BenchmarkStatus = "Above Average"
	StatusBelowAverage BenchmarkStatus = "Below Average"
)

// Row 单行交易（已按表头解析）
type Row struct {
	Type     TransactionType // 小写后的类型
	Amount   decimal.Decimal
	Category string
}

// CategoryTotal 分类汇总
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// Benchmarking 行业基准对比
type Benchmarking struct {
	Industry       string          `json:"industry"`
	Status         BenchmarkStatus `json:"status"`
	ExpectedMargin decimal.Decimal `json:"expected_margin"`
	CurrentMargin  decimal.Decimal `json:"current_margin"`
	IndustryAvg    string          `json:"industry_avg"` // 如 "15.0%"
	Current        string          `json:"current"`      // 如 "80.00%"
}

// MetricsRecord 单次分析的指标结果，构造后不再修改
type MetricsRecord struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
	Benchmarking  Benchmarking
	Alerts        []string

	RowCount          int
	RevenueRows       int
	ExpenseRows       int
	SkippedRows       int
	SkippedLines      []int // 被跳过行的源文件行号
	ExpenseCategories []CategoryTotal
}

// MarginRatio 净利润 / 营收；营收为 0 时返回 0
func (m *MetricsRecord) MarginRatio() decimal.Decimal {
	if m.TotalRevenue.IsZero() {
		return decimal.Zero
	}
	return m.NetProfit.Div(m.TotalRevenue)
}

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/errorx"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/parser"
)

var hundred = decimal.NewFromInt(100)

// Engine 财务指标聚合引擎；只读持有基准表，可并发使用
type Engine struct {
	benchmarks *model.BenchmarkTable
	mapper     *parser.FieldMapper
}

// NewEngine 创建聚合引擎
func NewEngine(benchmarks *model.BenchmarkTable) *Engine {
	return &Engine{
		benchmarks: benchmarks,
		mapper:     parser.NewFieldMapper(),
	}
}

// sums 预聚合结果
type sums struct {
	revenue     decimal.Decimal
	expenses    decimal.Decimal
	revenueRows int
	expenseRows int
	categories  map[string]*model.CategoryTotal
}

// Analyze 计算单个表格的财务指标
// 缺少 Type / Amount 列或聚合过程中出现异常时返回 *errorx.DataError
func (e *Engine) Analyze(sheet *model.Sheet, industry string) (record *model.MetricsRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = errorx.NewDataError("failed to analyze data", fmt.Errorf("%v", r))
		}
	}()

	if sheet == nil || len(sheet.Header) == 0 {
		return nil, errorx.NewDataError("no tabular data to analyze", nil)
	}

	mapping, err := e.mapper.MapColumns(sheet.Header)
	if err != nil {
		return nil, err
	}
	rows := e.mapper.MapRows(sheet, mapping)

	s := aggregateSums(rows.Rows)
	netProfit := s.revenue.Sub(s.expenses)

	name, expected, _ := e.benchmarks.Resolve(industry)
	current := calcMargin(netProfit, s.revenue)

	status := model.StatusBelowAverage
	if current.GreaterThan(expected) {
		status = model.StatusAboveAverage
	}

	categories := sortedCategories(s.categories)

	return &model.MetricsRecord{
		TotalRevenue:  s.revenue,
		TotalExpenses: s.expenses,
		NetProfit:     netProfit,
		Benchmarking: model.Benchmarking{
			Industry:       name,
			Status:         status,
			ExpectedMargin: expected,
			CurrentMargin:  current,
			IndustryAvg:    FormatBenchmarkPercent(expected),
			Current:        current.Mul(hundred).StringFixed(2) + "%",
		},
		Alerts:            buildAlerts(status, name, mapping.HasCategory(), categories),
		RowCount:          sheet.RowCount(),
		RevenueRows:       s.revenueRows,
		ExpenseRows:       s.expenseRows,
		SkippedRows:       rows.Skipped,
		SkippedLines:      rows.SkippedLines,
		ExpenseCategories: categories,
	}, nil
}

// aggregateSums 按类型汇总营收与支出，其他类型忽略
func aggregateSums(rows []model.Row) *sums {
	s := &sums{categories: make(map[string]*model.CategoryTotal)}

	for _, r := range rows {
		switch r.Type {
		case model.TypeRevenue:
			s.revenue = s.revenue.Add(r.Amount)
			s.revenueRows++
		case model.TypeExpense:
			s.expenses = s.expenses.Add(r.Amount)
			s.expenseRows++

			if r.Category == "" {
				continue
			}
			ct, ok := s.categories[r.Category]
			if !ok {
				ct = &model.CategoryTotal{Category: r.Category}
				s.categories[r.Category] = ct
			}
			ct.Count++
			ct.Total = ct.Total.Add(r.Amount)
		}
	}

	return s
}

// calcMargin 计算利润率；营收为 0 时返回 0
func calcMargin(netProfit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return netProfit.Div(revenue)
}

// sortedCategories 按支出金额降序，金额相同按名称升序
func sortedCategories(m map[string]*model.CategoryTotal) []model.CategoryTotal {
	out := make([]model.CategoryTotal, 0, len(m))
	for _, ct := range m {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// FormatBenchmarkPercent 行业基准百分比，至少保留一位小数，如 "15.0%"、"12.5%"
func FormatBenchmarkPercent(margin decimal.Decimal) string {
	pct := margin.Mul(hundred).String()
	if !strings.Contains(pct, ".") {
		pct += ".0"
	}
	return pct + "%"
}

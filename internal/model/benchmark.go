package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultIndustry 默认行业
const DefaultIndustry = "General"

// DefaultBenchmarks 行业平均利润率
func DefaultBenchmarks() map[string]float64 {
	return map[string]float64{
		"Manufacturing": 0.12,
		"Retail":        0.08,
		"Services":      0.25,
		"Logistics":     0.10,
		"General":       0.15,
	}
}

// IndustryBenchmark 单个行业基准
type IndustryBenchmark struct {
	Industry string  `json:"industry"`
	Margin   float64 `json:"margin"`
}

// BenchmarkTable 行业基准表，构造后只读，可并发读取
type BenchmarkTable struct {
	margins         map[string]decimal.Decimal // key: 小写行业名
	names           map[string]string          // key: 小写行业名 -> 原始行业名
	defaultIndustry string
}

// NewBenchmarkTable 创建行业基准表；默认行业必须存在于表中，其利润率即未知行业的兜底值
func NewBenchmarkTable(margins map[string]float64, defaultIndustry string) (*BenchmarkTable, error) {
	if len(margins) == 0 {
		return nil, fmt.Errorf("benchmark table is empty")
	}
	t := &BenchmarkTable{
		margins: make(map[string]decimal.Decimal, len(margins)),
		names:   make(map[string]string, len(margins)),
	}
	for name, margin := range margins {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("benchmark industry name is empty")
		}
		key := strings.ToLower(name)
		if _, dup := t.names[key]; dup {
			return nil, fmt.Errorf("duplicate benchmark industry %q", name)
		}
		t.margins[key] = decimal.NewFromFloat(margin)
		t.names[key] = name
	}

	def, ok := t.names[strings.ToLower(strings.TrimSpace(defaultIndustry))]
	if !ok {
		return nil, fmt.Errorf("default industry %q not found in benchmark table", defaultIndustry)
	}
	t.defaultIndustry = def
	return t, nil
}

// MustDefaultBenchmarkTable 内置基准表
func MustDefaultBenchmarkTable() *BenchmarkTable {
	t, err := NewBenchmarkTable(DefaultBenchmarks(), DefaultIndustry)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultIndustry 默认行业名
func (t *BenchmarkTable) DefaultIndustry() string {
	return t.defaultIndustry
}

// Resolve 查找行业基准；空值或未知行业回落到默认行业
func (t *BenchmarkTable) Resolve(industry string) (name string, margin decimal.Decimal, known bool) {
	key := strings.ToLower(strings.TrimSpace(industry))
	if m, ok := t.margins[key]; ok {
		return t.names[key], m, true
	}
	defKey := strings.ToLower(t.defaultIndustry)
	return t.defaultIndustry, t.margins[defKey], false
}

// List 按行业名排序返回全部基准
func (t *BenchmarkTable) List() []IndustryBenchmark {
	out := make([]IndustryBenchmark, 0, len(t.margins))
	for key, m := range t.margins {
		out = append(out, IndustryBenchmark{Industry: t.names[key], Margin: m.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Industry < out[j].Industry })
	return out
}

package advice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// DefaultLanguage 默认语言
const DefaultLanguage = "en"

// summaryTemplates 参数依次为：净利润、行业对比状态
var summaryTemplates = map[string]string{
	"en": "Financial Summary: Net Profit is $%s. Industry status: %s.",
	"hi": "वित्तीय सारांश: शुद्ध लाभ $%s है। उद्योग की स्थिति: %s।",
}

// Languages 支持的语言（排序后）
func Languages() []string {
	out := make([]string, 0, len(summaryTemplates))
	for lang := range summaryTemplates {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// ResolveLanguage 按主语言子标签匹配（"hi-IN" -> "hi"），不支持时回落到默认语言
func ResolveLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if _, ok := summaryTemplates[tag]; ok {
		return tag
	}
	return DefaultLanguage
}

// Summary 生成本地化摘要
func Summary(m *model.MetricsRecord, lang string) string {
	tmpl := summaryTemplates[ResolveLanguage(lang)]
	return fmt.Sprintf(tmpl, m.NetProfit.StringFixed(2), m.Benchmarking.Status)
}

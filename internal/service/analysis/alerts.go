package analysis

import (
	"fmt"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

const (
	alertProfitStrong = "Profitability is strong"
	alertReinvest     = "Consider reinvesting surplus"
	alertExpenseRatio = "High expense ratio detected; review your largest expense categories."
)

// buildAlerts 根据基准对比结果生成两条提示
// 低于基准时第二条提示指向支出最大的分类（无分类列时给出通用提示）
func buildAlerts(status model.BenchmarkStatus, industry string, hasCategory bool, expenses []model.CategoryTotal) []string {
	if status == model.StatusAboveAverage {
		return []string{alertProfitStrong, alertReinvest}
	}

	overhead := fmt.Sprintf("%s sector usually sees lower overhead; review your operations.", industry)
	ratio := alertExpenseRatio
	if hasCategory && len(expenses) > 0 {
		ratio = fmt.Sprintf("High expense ratio detected in '%s'", expenses[0].Category)
	}
	return []string{overhead, ratio}
}

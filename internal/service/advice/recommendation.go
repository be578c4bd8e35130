package advice

import (
	"github.com/shopspring/decimal"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// thinMarginThreshold 利润率低于该值视为利润偏薄
var thinMarginThreshold = decimal.NewFromFloat(0.10)

// Outlook 建议分档
type Outlook string

const (
	OutlookLoss    Outlook = "loss"
	OutlookThin    Outlook = "thin_margin"
	OutlookHealthy Outlook = "healthy"
)

var recommendations = map[Outlook]string{
	OutlookLoss:    "Your business is currently operating at a loss. Focus on cost optimization in non-essential expense categories. Identify low-margin products and consider price adjustments.",
	OutlookThin:    "Margins are thin. We recommend evaluating your supplier contracts to reduce COGS and exploring automated bookkeeping to reduce administrative overhead.",
	OutlookHealthy: "Financial health is robust. This is an ideal time to seek expansion capital. We recommend exploring SME working capital loans from our partner banks to scale your inventory.",
}

// Classify 按净利润符号与利润率分档；营收为 0 时利润率按 0 处理
func Classify(m *model.MetricsRecord) Outlook {
	if m.NetProfit.IsNegative() {
		return OutlookLoss
	}
	if m.MarginRatio().LessThan(thinMarginThreshold) {
		return OutlookThin
	}
	return OutlookHealthy
}

// Recommend 返回建议文本
func Recommend(m *model.MetricsRecord) string {
	return recommendations[Classify(m)]
}

package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

const (
	// maxAmountExponent 科学计数法指数上限，超出视为无法解析
	maxAmountExponent = 28
)

// maxAmount 单个金额绝对值上限；累加后仍可用 float64 有限表示
var maxAmount = decimal.New(1, 18)

// NormalizeColumnName 规范化列名：去除空白、下划线、连字符并转小写
func NormalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = whitespaceRe.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, "-", "")
	return strings.ToLower(name)
}

// ParseAmount 解析金额，失败时返回 (0, false)
// 支持千分位 "1,200.50"、前后空格和科学计数法；空串、指数过大或绝对值超过 1e18 视为无法解析
func ParseAmount(raw string) (decimal.Decimal, bool) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return decimal.Zero, false
	}
	// 移除千分位分隔符
	val = strings.ReplaceAll(val, ",", "")
	val = strings.ReplaceAll(val, " ", "")

	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	// 先限制指数再比较大小，避免超大指数在比较时放大为巨型整数
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeType 规范化交易类型（大小写不敏感）
func NormalizeType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// MatchPattern 使用正则匹配
func MatchPattern(text, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

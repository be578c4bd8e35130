package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/errorx"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// ErrorDetail 校验错误详情
type ErrorDetail struct {
	Path string `json:"path"`
	Info string `json:"info"`
}

// BenchmarkingResponse 行业对比
type BenchmarkingResponse struct {
	Industry       string  `json:"industry"`
	Status         string  `json:"status"`
	IndustryAvg    string  `json:"industry_avg"`
	Current        string  `json:"current"`
	ExpectedMargin float64 `json:"expected_margin"`
	CurrentMargin  float64 `json:"current_margin"`
}

// CategoryResponse 分类支出
type CategoryResponse struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

// MetricsResponse 指标结果
type MetricsResponse struct {
	TotalRevenue      float64              `json:"total_revenue"`
	TotalExpenses     float64              `json:"total_expenses"`
	NetProfit         float64              `json:"net_profit"`
	Benchmarking      BenchmarkingResponse `json:"benchmarking"`
	Alerts            []string             `json:"alerts"`
	RowCount          int                  `json:"row_count"`
	RevenueRows       int                  `json:"revenue_rows"`
	ExpenseRows       int                  `json:"expense_rows"`
	SkippedRows       int                  `json:"skipped_rows"`
	SkippedLines      []int                `json:"skipped_lines"`
	ExpenseCategories []CategoryResponse   `json:"expense_categories"`
}

// UploadResponse 上传分析响应
type UploadResponse struct {
	AnalysisID          string          `json:"analysis_id"`
	Filename            string          `json:"filename"`
	Metrics             MetricsResponse `json:"metrics"`
	Recommendation      string          `json:"recommendation"`
	MultilingualSummary string          `json:"multilingual_summary"`
}

// toMetricsResponse 转换为响应结构
func toMetricsResponse(m *model.MetricsRecord) MetricsResponse {
	categories := make([]CategoryResponse, 0, len(m.ExpenseCategories))
	for _, ct := range m.ExpenseCategories {
		categories = append(categories, CategoryResponse{
			Category: ct.Category,
			Count:    ct.Count,
			Total:    ct.Total.InexactFloat64(),
		})
	}

	alerts := make([]string, len(m.Alerts))
	copy(alerts, m.Alerts)

	return MetricsResponse{
		TotalRevenue:  m.TotalRevenue.InexactFloat64(),
		TotalExpenses: m.TotalExpenses.InexactFloat64(),
		NetProfit:     m.NetProfit.InexactFloat64(),
		Benchmarking: BenchmarkingResponse{
			Industry:       m.Benchmarking.Industry,
			Status:         string(m.Benchmarking.Status),
			IndustryAvg:    m.Benchmarking.IndustryAvg,
			Current:        m.Benchmarking.Current,
			ExpectedMargin: m.Benchmarking.ExpectedMargin.InexactFloat64(),
			CurrentMargin:  m.Benchmarking.CurrentMargin.InexactFloat64(),
		},
		Alerts:            alerts,
		RowCount:          m.RowCount,
		RevenueRows:       m.RevenueRows,
		ExpenseRows:       m.ExpenseRows,
		SkippedRows:       m.SkippedRows,
		SkippedLines:      append([]int{}, m.SkippedLines...),
		ExpenseCategories: categories,
	}
}

// respondError 按错误类型返回状态码；非业务错误不暴露细节
func respondError(c *gin.Context, err error) {
	status := errorx.HTTPStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

// respondBindError 参数绑定失败（带校验详情）
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, ErrorDetail{
				Path: fieldErr.Field(),
				Info: validationMessage(fieldErr),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// validationMessage 根据校验规则返回提示
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters"
	case "len":
		return fieldErr.Field() + " must be exactly " + fieldErr.Param() + " characters"
	default:
		return fieldErr.Field() + " is invalid"
	}
}

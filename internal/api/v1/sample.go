package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/exporter"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/service/advice"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/service/analysis"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SampleFile 下载示例文件
// GET /sample-csv[?format=xlsx]
func (h *Handler) SampleFile(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))

	switch format {
	case "csv":
		c.Header("Content-Disposition", attachment(exporter.SampleCSVFilename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", exporter.SampleCSV())
	case "xlsx":
		file, err := h.exporter.ExportSample()
		if err != nil {
			h.logger.Error("sample workbook export failed", zap.Error(err))
			respondError(c, err)
			return
		}
		defer file.Close()

		buf, err := file.WriteToBuffer()
		if err != nil {
			h.logger.Error("sample workbook write failed", zap.Error(err))
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", attachment(exporter.SampleXLSXFilename))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported sample format %q", format)})
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"", filename)
}

// IndustryResponse 行业基准
type IndustryResponse struct {
	Industry       string  `json:"industry"`
	ExpectedMargin float64 `json:"expected_margin"`
	IndustryAvg    string  `json:"industry_avg"`
}

// ListIndustries 列出行业基准
// GET /industries
func (h *Handler) ListIndustries(c *gin.Context) {
	list := h.benchmarks.List()
	items := make([]IndustryResponse, 0, len(list))
	for _, b := range list {
		items = append(items, IndustryResponse{
			Industry:       b.Industry,
			ExpectedMargin: b.Margin,
			IndustryAvg:    analysis.FormatBenchmarkPercent(decimal.NewFromFloat(b.Margin)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"industries":       items,
		"default_industry": h.opts.DefaultIndustry,
		"languages":        advice.Languages(),
	})
}

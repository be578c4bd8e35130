package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/exporter"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/service/advice"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/service/analysis"
)

// Options 处理器选项
type Options struct {
	DefaultIndustry string
	DefaultLang     string
	MaxUploadBytes  int64
}

// Handler V1 API 处理器
type Handler struct {
	engine     *analysis.Engine
	benchmarks *model.BenchmarkTable
	exporter   *exporter.Exporter
	logger     *zap.Logger
	opts       Options
}

// NewHandler 创建 V1 API 处理器
func NewHandler(benchmarks *model.BenchmarkTable, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultIndustry == "" {
		opts.DefaultIndustry = benchmarks.DefaultIndustry()
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = advice.DefaultLanguage
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{
		engine:     analysis.NewEngine(benchmarks),
		benchmarks: benchmarks,
		exporter:   exporter.NewExporter(),
		logger:     logger,
		opts:       opts,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Welcome)
	router.GET("/healthz", h.Health)

	// 上传分析
	router.POST("/upload", h.Upload)
	// 示例文件
	router.GET("/sample-csv", h.SampleFile)
	// 行业基准
	router.GET("/industries", h.ListIndustries)

	// 外部集成（未实现）
	router.GET("/bank-integration", h.BankIntegration)
	router.GET("/gst-data", h.GSTData)
}

// Welcome 欢迎信息
// GET /
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Financial Health Assessment API"})
}

// Health 健康检查
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

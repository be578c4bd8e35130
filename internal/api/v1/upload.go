package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/parser"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/server/middleware"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/service/advice"
)

// multipart 边界与表单字段的额外开销
const multipartOverhead = 1 << 20

// UploadForm 上传表单
type UploadForm struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Industry string                `form:"industry" binding:"max=64"`
	Lang     string                `form:"lang" binding:"max=16"`
}

// Upload 上传并分析财务文件
// POST /upload
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+multipartOverhead)

	var form UploadForm
	if err := c.ShouldBind(&form); err != nil {
		if isTooLarge(err) {
			h.respondTooLarge(c)
			return
		}
		respondBindError(c, err)
		return
	}
	format, err := parser.DetectFormat(form.File.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	if form.File.Size > h.opts.MaxUploadBytes {
		h.respondTooLarge(c)
		return
	}

	industry := form.Industry
	if industry == "" {
		industry = h.opts.DefaultIndustry
	}
	lang := form.Lang
	if lang == "" {
		lang = h.opts.DefaultLang
	}

	data, err := readUpload(form.File, h.opts.MaxUploadBytes)
	if err != nil {
		if isTooLarge(err) {
			h.respondTooLarge(c)
			return
		}
		respondError(c, err)
		return
	}

	sheet, err := parser.Parse(form.File.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	analysisID := uuid.New().String()
	record, err := h.engine.Analyze(sheet, industry)
	if err != nil {
		h.logger.Warn("analysis rejected",
			zap.String(middleware.RequestIDKey, c.GetString(middleware.RequestIDKey)),
			zap.String("analysis_id", analysisID),
			zap.String("filename", form.File.Filename),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	if record.SkippedRows > 0 {
		h.logger.Warn("rows skipped: amount not numeric",
			zap.String(middleware.RequestIDKey, c.GetString(middleware.RequestIDKey)),
			zap.String("analysis_id", analysisID),
			zap.Ints("lines", record.SkippedLines),
		)
	}

	h.logger.Info("analysis completed",
		zap.String(middleware.RequestIDKey, c.GetString(middleware.RequestIDKey)),
		zap.String("analysis_id", analysisID),
		zap.String("format", string(format)),
		zap.String("industry", record.Benchmarking.Industry),
		zap.Int("rows", record.RowCount),
		zap.Int("skipped", record.SkippedRows),
		zap.String("status", string(record.Benchmarking.Status)),
	)

	c.JSON(http.StatusOK, UploadResponse{
		AnalysisID:          analysisID,
		Filename:            form.File.Filename,
		Metrics:             toMetricsResponse(record),
		Recommendation:      advice.Recommend(record),
		MultilingualSummary: advice.Summary(record, lang),
	})
}

func (h *Handler) respondTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("file exceeds the %d MB upload limit", h.opts.MaxUploadBytes>>20),
	})
}

// readUpload 读取上传内容，超过 limit 返回 *http.MaxBytesError
func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &http.MaxBytesError{Limit: limit}
	}
	return data, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/Dhagoo/Financial-Health-Assistant/internal/api/v1"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/config"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/server/middleware"
)

// ShutdownTimeout 优雅关闭的最长等待时间
const ShutdownTimeout = 30 * time.Second

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	benchmarks, err := cfg.BenchmarkTable()
	if err != nil {
		return nil, fmt.Errorf("build benchmark table: %w", err)
	}

	handler := v1.NewHandler(benchmarks, logger, v1.Options{
		DefaultIndustry: cfg.Analysis.DefaultIndustry,
		DefaultLang:     cfg.Analysis.DefaultLang,
		MaxUploadBytes:  cfg.MaxUploadBytes(),
	})

	s := &Server{
		router: gin.New(),
		logger: logger,
		v1:     handler,
	}
	s.setupRoutes(cfg.Server.AllowedOrigins)

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// setupRoutes 设置中间件与路由
func (s *Server) setupRoutes(allowedOrigins []string) {
	s.router.Use(
		middleware.RequestID(),
		middleware.Recovery(s.logger),
		middleware.AccessLog(s.logger),
		middleware.CORS(allowedOrigins),
	)

	s.v1.RegisterRoutes(s.router)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 监听地址
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run 启动服务器，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	return <-errCh
}

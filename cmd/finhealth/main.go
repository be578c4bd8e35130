package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/config"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/logger"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/server"
)

var (
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	port       = flag.Int("port", 0, "服务端口 (优先于 config.toml 与 PORT 环境变量)")
	devMode    = flag.Bool("dev", false, "开发模式")
	envFile    = flag.String("env", ".env", ".env 文件路径")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finhealth: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(*envFile); err != nil {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 命令行参数覆盖配置
	portOverridden := false
	if *port > 0 {
		portOverridden = info.PortSpecified && cfg.Server.Port != *port
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded",
		zap.String("path", info.Path),
		zap.Bool("file_found", info.FileFound),
		zap.String("addr", cfg.Addr()),
		zap.Bool("dev_mode", cfg.Server.DevMode),
		zap.Int64("max_upload_mb", cfg.Upload.MaxSizeMB),
		zap.String("default_industry", cfg.Analysis.DefaultIndustry),
	)
	if portOverridden {
		log.Warn("port from config file overridden by -port flag", zap.Int("port", cfg.Server.Port))
	}

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			log.Info("shutdown requested")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Upload   UploadConfig   `toml:"upload"`
	Analysis AnalysisConfig `toml:"analysis"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	DevMode        bool     `toml:"dev_mode"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxSizeMB int64 `toml:"max_size_mb"`
}

// AnalysisConfig 分析配置
type AnalysisConfig struct {
	DefaultIndustry string             `toml:"default_industry"`
	DefaultLang     string             `toml:"default_lang"`
	Benchmarks      map[string]float64 `toml:"benchmarks"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `toml:"level"`
	Encoding string `toml:"encoding"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			DevMode:        false,
			AllowedOrigins: []string{"*"},
		},
		Upload: UploadConfig{
			MaxSizeMB: 10,
		},
		Analysis: AnalysisConfig{
			DefaultIndustry: model.DefaultIndustry,
			DefaultLang:     "en",
			Benchmarks:      model.DefaultBenchmarks(),
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// path 为空时使用可执行文件同目录下的 config.toml；文件不存在时使用默认配置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)

		// 表中显式给出 benchmarks 时整体替换默认表
		config.Analysis.Benchmarks = nil
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
		if config.Analysis.Benchmarks == nil {
			config.Analysis.Benchmarks = model.DefaultBenchmarks()
		}
	case errors.Is(err, os.ErrNotExist):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	ApplyEnv(config)
	return config, info, nil
}

// LoadDotEnv 加载 .env 文件（不覆盖已有环境变量），文件不存在时忽略
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv 环境变量覆盖（HOST / PORT / LOG_LEVEL）
func ApplyEnv(config *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("HOST")); v != "" {
		config.Server.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		config.Log.Level = strings.ToLower(v)
	}
}

// Addr 监听地址
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes 上传大小上限（字节）
func (c *AppConfig) MaxUploadBytes() int64 {
	return c.Upload.MaxSizeMB << 20
}

// BenchmarkTable 根据配置构造只读基准表
func (c *AppConfig) BenchmarkTable() (*model.BenchmarkTable, error) {
	return model.NewBenchmarkTable(c.Analysis.Benchmarks, c.Analysis.DefaultIndustry)
}

// Validate 校验配置，汇总所有问题后返回
func (c *AppConfig) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Upload.MaxSizeMB < 1 {
		problems = append(problems, fmt.Sprintf("invalid upload.max_size_mb %d: must be at least 1", c.Upload.MaxSizeMB))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		problems = append(problems, "server.allowed_origins cannot be empty")
	}

	for name, margin := range c.Analysis.Benchmarks {
		if margin < -1 || margin > 1 {
			problems = append(problems, fmt.Sprintf("invalid benchmark for %q: %v must be between -1 and 1", name, margin))
		}
	}
	if _, err := c.BenchmarkTable(); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("invalid log encoding %q: must be json or console", c.Log.Encoding))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

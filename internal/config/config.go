// Package config 提供配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Solver   SolverConfig   `yaml:"solver"`
	Audit    AuditConfig    `yaml:"audit"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// APIConfig API配置
type APIConfig struct {
	RateLimit int           `yaml:"rate_limit"`
	Timeout   time.Duration `yaml:"timeout"`
	CORS      CORSConfig    `yaml:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	Enabled bool     `yaml:"enabled"`
	Origins []string `yaml:"origins"`
}

// SolverConfig CP-SAT 求解器配置（§5 Concurrency & Resource Model）。
type SolverConfig struct {
	DefaultTimeLimit time.Duration `yaml:"default_time_limit"`
	Workers          int           `yaml:"workers"`
	EnableWeekdayCap bool          `yaml:"enable_weekday_cap"` // Open Question 2 的决定：默认开启
}

// AuditConfig 求解审计日志配置（§6，审计库不可用时只记录日志不阻断求解）。
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "paiban"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7012),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "paiban"),
			User:            getEnv("DB_USER", "paiban"),
			Password:        getEnv("DB_PASSWORD", "paiban123"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		API: APIConfig{
			RateLimit: getEnvInt("API_RATE_LIMIT", 100),
			Timeout:   getEnvDuration("API_TIMEOUT", 30*time.Second),
			CORS: CORSConfig{
				Enabled: getEnvBool("API_CORS_ENABLED", true),
				Origins: []string{"*"},
			},
		},
		Solver: SolverConfig{
			DefaultTimeLimit: getEnvDuration("SOLVER_TIME_LIMIT", 90*time.Second),
			Workers:          getEnvInt("SOLVER_WORKERS", 8),
			EnableWeekdayCap: getEnvBool("SOLVER_ENABLE_WEEKDAY_CAP", true),
		},
		Audit: AuditConfig{
			Enabled: getEnvBool("AUDIT_ENABLED", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsTest 检查是否为测试环境
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

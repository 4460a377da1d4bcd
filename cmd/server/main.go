// the-roster-system 周排班求解服务
// 主程序入口

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Ciantar0309/the-roster-system/internal/audit"
	"github.com/Ciantar0309/the-roster-system/internal/config"
	"github.com/Ciantar0309/the-roster-system/internal/database"
	"github.com/Ciantar0309/the-roster-system/internal/handler"
	"github.com/Ciantar0309/the-roster-system/internal/metrics"
	"github.com/Ciantar0309/the-roster-system/internal/middleware"
	"github.com/Ciantar0309/the-roster-system/pkg/logger"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger.Init(logger.Config{
		Level:  os.Getenv("APP_LOG_LEVEL"),
		Format: "console",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	fmt.Printf("the-roster-system v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	var auditLog *audit.Log
	if cfg.Audit.Enabled {
		db, err := database.New(&cfg.Database)
		if err != nil {
			logger.Warn().Err(err).Msg("审计数据库不可用，求解审计将只记录日志")
			auditLog = audit.New(nil)
		} else {
			defer db.Close()
			auditLog = audit.New(db)
			auditLog.EnsureSchema(context.Background())
		}
	} else {
		auditLog = audit.New(nil)
	}

	rosterHandler := handler.NewRosterHandler(auditLog, cfg.Solver)

	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"the-roster-system"}`))
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "the-roster-system API v1",
			"endpoints": {
				"roster": {
					"solve": "POST /api/v1/roster/solve"
				}
			}
		}`))
	})

	// 单周求解 API
	mux.HandleFunc("/api/v1/roster/solve", rosterHandler.Solve)

	// ========================================
	// 监控端点
	// ========================================

	mux.Handle("/metrics", metrics.Handler())

	// ========================================
	// 中间件
	// ========================================

	// 执行顺序：recovery -> requestID -> rateLimit -> cors -> securityHeaders -> logging -> handler
	wrapped := middleware.RecoveryMiddleware(
		requestIDMiddleware(
			rateLimitMiddleware(
				corsMiddleware(
					middleware.SecurityHeadersMiddleware(
						loggingMiddleware(mux),
					),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + fmt.Sprintf("%d", cfg.App.Port),
		Handler:      wrapped,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Solver.DefaultTimeLimit + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Str("api_docs", fmt.Sprintf("http://localhost:%d/api/v1/", cfg.App.Port)).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}

// requestIDMiddleware 请求ID追踪中间件
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware 日志中间件
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID, _ := r.Context().Value("request_id").(string)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Msg("请求处理")

		metrics.RecordRequestMetrics(r.Method, r.URL.Path, rw.statusCode, duration)
	})
}

// responseWriter 包装ResponseWriter以捕获状态码
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RateLimiter 简单的令牌桶限流器
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // 每秒添加的令牌数
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	return &RateLimiter{
		tokens:     requestsPerSecond,
		maxTokens:  requestsPerSecond * 2,
		refillRate: requestsPerSecond,
		lastRefill: time.Now(),
	}
}

// Allow 检查是否允许请求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

var globalRateLimiter = NewRateLimiter(100)

// rateLimitMiddleware 限流中间件
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !globalRateLimiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   true,
				"code":    "RATE_LIMITED",
				"message": "请求过于频繁，请稍后重试",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware CORS中间件
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

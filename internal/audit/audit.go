// Package audit 记录每次求解调用的审计轨迹：谁在何时提交了哪一周、求解器
// 返回什么状态、用了多久。审计库不可用时只记日志，绝不阻断求解本身（§6）。
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ciantar0309/the-roster-system/internal/database"
	"github.com/Ciantar0309/the-roster-system/pkg/logger"
)

// Record 一次求解调用的审计条目。
type Record struct {
	ID          uuid.UUID
	WeekStart   string
	Status      string
	ShiftCount  int
	DurationMS  int64
	RequestedAt time.Time
}

// Log 审计记录器；db 为 nil 时退化为纯日志模式（例如审计库未配置）。
type Log struct {
	db *database.DB
}

// New 创建审计记录器，db 可以是 nil。
func New(db *database.DB) *Log {
	return &Log{db: db}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS roster_solve_audit (
	id UUID PRIMARY KEY,
	week_start TEXT NOT NULL,
	status TEXT NOT NULL,
	shift_count INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	requested_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema 创建审计表（幂等），数据库不可用时只记警告。
func (l *Log) EnsureSchema(ctx context.Context) {
	if l.db == nil {
		return
	}
	if _, err := l.db.ExecContext(ctx, createTableSQL); err != nil {
		logger.Warn().Err(err).Msg("审计表初始化失败，本次求解仍继续")
	}
}

// Record 写入一条审计记录；失败只记警告，从不向调用者返回错误。
func (l *Log) Record(ctx context.Context, r Record) {
	logger.Info().
		Str("event", "roster_solve").
		Str("weekStart", r.WeekStart).
		Str("status", r.Status).
		Int("shiftCount", r.ShiftCount).
		Int64("durationMs", r.DurationMS).
		Msg("求解完成")

	if l.db == nil {
		return
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO roster_solve_audit (id, week_start, status, shift_count, duration_ms, requested_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), r.WeekStart, r.Status, r.ShiftCount, r.DurationMS, r.RequestedAt,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("写入求解审计记录失败，不影响本次求解结果")
	}
}

// Package log 提供 go-swarm 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，按组件输出结构化日志。
//
// 日志级别可通过环境变量 SWARM_LOG_LEVEL 配置：
//
//	SWARM_LOG_LEVEL=debug                       # 所有组件 debug
//	SWARM_LOG_LEVEL=core/upgrader=debug,warn    # upgrader 为 debug，其余为 warn
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// EnvLevel 日志级别环境变量
const EnvLevel = "SWARM_LOG_LEVEL"

var (
	mu          sync.RWMutex
	output      io.Writer = os.Stderr
	baseLevel             = slog.LevelInfo
	componentLv           = map[string]slog.Level{}
)

func init() {
	if v := os.Getenv(EnvLevel); v != "" {
		parseLevels(v)
	}
}

// parseLevels 解析 "组件=级别,默认级别" 格式
func parseLevels(s string) {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, lv, ok := strings.Cut(part, "="); ok {
			if level, ok := parseLevel(lv); ok {
				componentLv[strings.TrimSpace(name)] = level
			}
			continue
		}
		if level, ok := parseLevel(part); ok {
			baseLevel = level
		}
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

// SetOutput 设置日志输出目标
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// SetLevel 设置默认日志级别
//
// 已通过环境变量单独配置的组件不受影响。
func SetLevel(level slog.Level) {
	mu.Lock()
	baseLevel = level
	mu.Unlock()
}

// SetComponentLevel 设置单个组件的日志级别
func SetComponentLevel(component string, level slog.Level) {
	mu.Lock()
	componentLv[component] = level
	mu.Unlock()
}

// Discard 丢弃所有日志输出（测试使用）
func Discard() {
	SetOutput(io.Discard)
}

func handlerFor(component string) *slog.Logger {
	mu.RLock()
	w := output
	level, ok := componentLv[component]
	if !ok {
		level = baseLevel
	}
	mu.RUnlock()

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("component", component)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时按当前的输出目标和级别构造 handler，
// 支持在运行时切换输出（例如测试中调用 Discard）。
//
//	var logger = log.Logger("core/upgrader")
//	logger.Debug("协商完成", "protocol", proto)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Enabled 判断指定级别是否会输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return handlerFor(l.component).Enabled(context.Background(), level)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	handlerFor(l.component).Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	handlerFor(l.component).Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	handlerFor(l.component).Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	handlerFor(l.component).Error(msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return handlerFor(l.component).With(args...)
}

// TruncateID 安全截取 ID 用于日志显示
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

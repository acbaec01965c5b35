// Package logger installs the process-wide JSON logger. Events use dotted
// names (sheet.write_failed, roster.add) and carry the service name.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"bitbuzz/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/lumberjack.v2"
)

const Service = "bitbuzz"

// Init makes the configured logger the slog default and returns it.
func Init(cfg config.LogConfig) *slog.Logger {
	l := slog.New(NewHandler(cfg))
	slog.SetDefault(l)
	Info("logger.init", "level", cfg.Level, "file", cfg.File)
	return l
}

// NewHandler writes JSON records to stdout, a rotated file, or both.
func NewHandler(cfg config.LogConfig) slog.Handler {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	return h.WithAttrs([]slog.Attr{slog.String("service", Service)})
}

// AccessLog logs one http.request record per request through slog, so
// request lines share the file and format of the application events.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "http.request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

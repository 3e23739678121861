package utils

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NewRollingFileLogger builds a zap logger that writes JSON lines to a
// rolling file. It backs the HTTP access log, kept separate from the
// application log.
func NewRollingFileLogger(path, level string, maxSize, maxBackups, maxAge int, compress bool) (*zap.Logger, error) {
	if path == "" {
		path = "logs/access.log"
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    nz(maxSize, 100),
		MaxBackups: nz(maxBackups, 3),
		MaxAge:     nz(maxAge, 7),
		Compress:   compress,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(lj),
		levelEnabler(parseLevel(level)),
	)
	return zap.New(core), nil
}

// Ginzap logs each request with method, path, status and latency.
func Ginzap(logger *zap.Logger, timeFormat string, utc bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery

		ctx.Next()

		end := time.Now()
		if utc {
			end = end.UTC()
		}

		fields := []zap.Field{
			zap.Int("status", ctx.Writer.Status()),
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", ctx.ClientIP()),
			zap.String("user-agent", ctx.Request.UserAgent()),
			zap.String("time", end.Format(timeFormat)),
			zap.Duration("latency", end.Sub(start)),
		}
		if len(ctx.Errors) > 0 {
			for _, e := range ctx.Errors.Errors() {
				logger.Error(e, fields...)
			}
			return
		}
		logger.Info(path, fields...)
	}
}

// RecoveryWithZap recovers from panics, logs them and answers 500.
func RecoveryWithZap(logger *zap.Logger, stack bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.Any("error", err),
					zap.String("method", ctx.Request.Method),
					zap.String("path", ctx.Request.URL.Path),
				}
				if stack {
					fields = append(fields, zap.String("stack", string(debug.Stack())))
				}
				logger.Error("panic recovered", fields...)
				Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}

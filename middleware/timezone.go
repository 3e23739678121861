package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/config"
)

// ContextLocationKey stores the owner-local *time.Location in the Gin
// context.
const ContextLocationKey = "tz_location"

// Timezone resolves the caller's IANA timezone from the X-Timezone header,
// falling back to the configured default. Calendar days are owner-local, so
// which day is "today" depends on this.
func Timezone() gin.HandlerFunc {
	cfg := config.Get()
	fallback, err := time.LoadLocation(cfg.Engine.DefaultTimezone)
	if err != nil {
		fallback = time.UTC
	}
	return func(ctx *gin.Context) {
		loc := fallback
		if name := ctx.GetHeader("X-Timezone"); name != "" {
			if parsed, err := time.LoadLocation(name); err == nil {
				loc = parsed
			}
		}
		ctx.Set(ContextLocationKey, loc)
		ctx.Next()
	}
}

package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/engine"
	"github.com/habitd/habitd/middleware"
	"github.com/habitd/habitd/utils"
)

func getOwnerID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextOwnerIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// ownerClock builds the owner-local clock from the timezone the request
// resolved to.
func ownerClock(ctx *gin.Context) engine.Clock {
	if v, ok := ctx.Get(middleware.ContextLocationKey); ok {
		if loc, ok := v.(*time.Location); ok {
			return engine.NewSystemClock(loc)
		}
	}
	return engine.NewSystemClock(time.UTC)
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 50
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 365 {
		pageSize = s
	}
	return page, pageSize
}

// invalidateStatsCache drops every cached aggregate for an owner. Called
// after any write that can move a streak.
func invalidateStatsCache(ownerID uint) {
	utils.InvalidateByPrefix(fmt.Sprintf("cache:stats:owner:%d", ownerID))
}

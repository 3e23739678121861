package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/config"
	"github.com/habitd/habitd/controllers"
	"github.com/habitd/habitd/middleware"
	"github.com/habitd/habitd/store"
	"github.com/habitd/habitd/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(st store.Store) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.App.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.App.GinLogPath, cfg.Log.Level,
		cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Timezone"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.App.AllowedOrigins) == 1 && cfg.App.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.App.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Resolve the caller's calendar before any handler needs "today"
	r.Use(middleware.Timezone())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	habitController := controllers.NewHabitController(st)
	eventController := controllers.NewEventController(st)
	statsController := controllers.NewStatsController(st)
	catalogController := controllers.NewCatalogController()

	api := r.Group("/api/v1")

	// Public, but rate limited per client IP
	parseGroup := api.Group("")
	parseGroup.Use(middleware.RateLimitMiddleware())
	parseGroup.POST("/parse", eventController.ParseEntry)

	// Public catalog endpoints
	api.GET("/milestones/catalog", catalogController.GetMilestoneCatalog)
	api.GET("/config/habit-options", catalogController.GetHabitOptions)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/habits", habitController.ListHabits)
	protected.POST("/habits", habitController.CreateHabit)
	protected.PUT("/habits/order", habitController.ReorderHabits)
	protected.GET("/habits/:id", habitController.GetHabit)
	protected.PUT("/habits/:id", habitController.UpdateHabit)
	protected.DELETE("/habits/:id", habitController.DeleteHabit)
	protected.POST("/habits/:id/archive", habitController.ArchiveHabit)
	protected.POST("/habits/:id/unarchive", habitController.UnarchiveHabit)

	protected.GET("/habits/:id/events", eventController.ListEvents)
	protected.GET("/habits/:id/days/:date", eventController.GetDay)
	protected.PUT("/habits/:id/days/:date", eventController.PutDay)
	protected.DELETE("/habits/:id/days/:date", eventController.DeleteDay)
	protected.POST("/habits/:id/relapses", eventController.CreateRelapse)
	protected.PUT("/habits/:id/relapses/:uid", eventController.UpdateRelapse)
	protected.DELETE("/habits/:id/relapses/:uid", eventController.DeleteRelapse)

	protected.GET("/habits/:id/stats", statsController.GetHabitStats)
	protected.GET("/stats", statsController.GetStats)
	protected.GET("/milestones", statsController.GetMilestones)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}

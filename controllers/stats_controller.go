package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/config"
	"github.com/habitd/habitd/engine"
	"github.com/habitd/habitd/models"
	"github.com/habitd/habitd/store"
	"github.com/habitd/habitd/utils"
)

// StatsController serves aggregate progress: account-wide stats, per-habit
// streak detail and milestone evaluation.
type StatsController struct {
	store store.Store
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(st store.Store) *StatsController {
	return &StatsController{store: st}
}

// GetStats returns the owner's aggregate numbers across all habits.
// Responses are cached per owner and day; any habit or event write
// invalidates the owner's entries.
func (s *StatsController) GetStats(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	today := ownerClock(ctx).Today()

	cacheKey := fmt.Sprintf("cache:stats:owner:%d:%s", ownerID, today)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	habits, err := s.store.ListHabits(ctx, ownerID, true)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to compute stats")
		return
	}
	eventsByHabit, err := s.store.ListEventsForOwner(ctx, ownerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to compute stats")
		return
	}
	lookback := config.Get().Engine.StreakLookbackDays

	stats, err := engine.AggregateStats(habits, eventsByHabit, today, lookback)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("stats aggregation failed owner=%d: %v", ownerID, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to compute stats")
		return
	}

	summaries := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		if habit.Archived {
			continue
		}
		item, err := habitSummary(habit, eventsByHabit[habit.ID], today, lookback)
		if err != nil {
			if utils.Sugar != nil {
				utils.Sugar.Errorf("stats summary failed owner=%d habit=%d: %v", ownerID, habit.ID, err)
			}
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to compute stats")
			return
		}
		summaries = append(summaries, item)
	}

	payload := gin.H{
		"date":   today,
		"stats":  stats,
		"habits": summaries,
	}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	ttl := time.Duration(config.Get().Engine.CacheTTLSeconds) * time.Second
	utils.CacheSetJSON(cacheKey, wrapper, ttl)

	utils.Success(ctx, payload)
}

// GetHabitStats returns one habit's streaks, weekly progress, tolerance
// state and a strip of the last seven days.
func (s *StatsController) GetHabitStats(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habitID, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid habit id")
		return
	}
	habit, err := s.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	events, err := s.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to compute stats")
		return
	}
	today := ownerClock(ctx).Today()

	streaks, err := engine.ComputeStreaks(*habit, events, today, config.Get().Engine.StreakLookbackDays)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	loggedDays := make(map[string]struct{}, len(events))
	for _, ev := range events {
		loggedDays[ev.Date] = struct{}{}
	}

	payload := gin.H{
		"habit_id":       habit.ID,
		"name":           habit.Name,
		"goal_label":     engine.DescribeGoal(*habit),
		"current_streak": streaks.Current,
		"longest_streak": streaks.Longest,
		"days_logged":    len(loggedDays),
		"recent":         s.recentStrip(*habit, events, today),
	}

	if habit.Frequency == models.FrequencyWeekly || habit.Frequency == models.FrequencySpecificDays {
		week, err := engine.WeeklyProgress(*habit, events, today)
		if err != nil {
			respondEngineError(ctx, err)
			return
		}
		payload["week"] = week
	}
	if report, ok, err := engine.ToleranceStatus(*habit, events, today); err != nil {
		respondEngineError(ctx, err)
		return
	} else if ok {
		payload["tolerance"] = report
	}

	utils.Success(ctx, payload)
}

// GetMilestones evaluates the milestone catalog against the owner's
// current stats. Evaluation is stateless, so lost ground shows as lost.
func (s *StatsController) GetMilestones(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	today := ownerClock(ctx).Today()

	stats, err := s.aggregate(ctx, ownerID, today)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("milestone evaluation failed owner=%d: %v", ownerID, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to evaluate milestones")
		return
	}

	utils.Success(ctx, gin.H{
		"milestones": engine.EvaluateMilestones(stats),
		"stats":      stats,
	})
}

// aggregate loads everything the owner has and folds it into UserStats.
// Archived habits are included; they stop contributing streaks but their
// logged days still count.
func (s *StatsController) aggregate(ctx *gin.Context, ownerID uint, today string) (engine.UserStats, error) {
	habits, err := s.store.ListHabits(ctx, ownerID, true)
	if err != nil {
		return engine.UserStats{}, err
	}
	eventsByHabit, err := s.store.ListEventsForOwner(ctx, ownerID)
	if err != nil {
		return engine.UserStats{}, err
	}
	return engine.AggregateStats(habits, eventsByHabit, today, config.Get().Engine.StreakLookbackDays)
}

// recentStrip resolves the last seven days into a compact status row.
func (s *StatsController) recentStrip(habit models.Habit, events []models.HabitEvent, today string) []gin.H {
	strip := make([]gin.H, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day, err := engine.AddDays(today, offset)
		if err != nil {
			continue
		}
		res := engine.ResolveDay(habit, day, events, today)
		strip = append(strip, gin.H{"date": day, "status": res.Status})
	}
	return strip
}

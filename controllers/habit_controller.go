package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/config"
	"github.com/habitd/habitd/engine"
	"github.com/habitd/habitd/models"
	"github.com/habitd/habitd/store"
	"github.com/habitd/habitd/utils"
)

// HabitController manages the habit lifecycle: definition, archival and
// ordering. Day-by-day logging lives in EventController.
type HabitController struct {
	store store.Store
}

// NewHabitController creates a new HabitController instance.
func NewHabitController(st store.Store) *HabitController {
	return &HabitController{store: st}
}

type habitPayload struct {
	Name                 string   `json:"name" binding:"required,min=1"`
	Type                 string   `json:"type" binding:"required"`
	Frequency            string   `json:"frequency"`
	GoalPerWeek          int      `json:"goal_per_week"`
	ScheduledDays        string   `json:"scheduled_days"`
	GoalValue            *float64 `json:"goal_value"`
	GoalDirection        string   `json:"goal_direction"`
	Unit                 string   `json:"unit"`
	GoalTime             string   `json:"goal_time"`
	GoalTimesByDay       string   `json:"goal_times_by_day"`
	ToleranceWindow      string   `json:"tolerance_window"`
	ToleranceMaxFailures int      `json:"tolerance_max_failures"`
	Order                *int     `json:"order"`
}

// CreateHabit registers a new habit after checking its goal is coherent.
func (h *HabitController) CreateHabit(ctx *gin.Context) {
	var req habitPayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40012, "name cannot be empty")
		return
	}

	habit := models.Habit{
		OwnerID:              ownerID,
		Name:                 name,
		Type:                 models.HabitType(req.Type),
		Frequency:            models.Frequency(req.Frequency),
		GoalPerWeek:          req.GoalPerWeek,
		ScheduledDays:        strings.ToLower(strings.ReplaceAll(req.ScheduledDays, " ", "")),
		GoalValue:            req.GoalValue,
		GoalDirection:        models.GoalDirection(req.GoalDirection),
		Unit:                 utils.Sanitize(strings.TrimSpace(req.Unit)),
		GoalTime:             strings.TrimSpace(req.GoalTime),
		GoalTimesByDay:       strings.TrimSpace(req.GoalTimesByDay),
		ToleranceWindow:      models.ToleranceWindow(req.ToleranceWindow),
		ToleranceMaxFailures: req.ToleranceMaxFailures,
	}
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}

	if err := engine.ValidateGoal(habit); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, err.Error())
		return
	}

	if req.Order != nil {
		habit.DisplayOrder = *req.Order
	} else {
		existing, err := h.store.ListHabits(ctx, ownerID, true)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create habit")
			return
		}
		habit.DisplayOrder = len(existing)
	}

	if err := h.store.CreateHabit(ctx, &habit); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create habit")
		return
	}

	invalidateStatsCache(ownerID)
	utils.Success(ctx, gin.H{
		"habit":      habit,
		"goal_label": engine.DescribeGoal(habit),
	})
}

// ListHabits returns the owner's habits with their streaks and today's
// resolved status, ordered for display.
func (h *HabitController) ListHabits(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	includeArchived := ctx.Query("include_archived") == "true"

	habits, err := h.store.ListHabits(ctx, ownerID, includeArchived)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to list habits")
		return
	}
	eventsByHabit, err := h.store.ListEventsForOwner(ctx, ownerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to list habits")
		return
	}

	today := ownerClock(ctx).Today()
	lookback := config.Get().Engine.StreakLookbackDays

	items := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		events := eventsByHabit[habit.ID]
		item, err := habitSummary(habit, events, today, lookback)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to list habits")
			return
		}
		items = append(items, item)
	}

	utils.Success(ctx, gin.H{"items": items, "date": today})
}

// GetHabit returns one habit with its full evaluation summary.
func (h *HabitController) GetHabit(ctx *gin.Context) {
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

	habit, err := h.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}
	events, err := h.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load habit")
		return
	}

	today := ownerClock(ctx).Today()
	item, err := habitSummary(*habit, events, today, config.Get().Engine.StreakLookbackDays)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load habit")
		return
	}
	utils.Success(ctx, item)
}

// UpdateHabit applies a partial update and re-checks the resulting goal.
func (h *HabitController) UpdateHabit(ctx *gin.Context) {
	var req struct {
		Name                 *string  `json:"name"`
		Type                 *string  `json:"type"`
		Frequency            *string  `json:"frequency"`
		GoalPerWeek          *int     `json:"goal_per_week"`
		ScheduledDays        *string  `json:"scheduled_days"`
		GoalValue            *float64 `json:"goal_value"`
		GoalDirection        *string  `json:"goal_direction"`
		Unit                 *string  `json:"unit"`
		GoalTime             *string  `json:"goal_time"`
		GoalTimesByDay       *string  `json:"goal_times_by_day"`
		ToleranceWindow      *string  `json:"tolerance_window"`
		ToleranceMaxFailures *int     `json:"tolerance_max_failures"`
		Order                *int     `json:"order"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

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

	habit, err := h.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	if req.Name != nil {
		name := utils.Sanitize(strings.TrimSpace(*req.Name))
		if name == "" {
			utils.Error(ctx, http.StatusBadRequest, 40012, "name cannot be empty")
			return
		}
		habit.Name = name
	}
	if req.Type != nil {
		habit.Type = models.HabitType(*req.Type)
	}
	if req.Frequency != nil {
		habit.Frequency = models.Frequency(*req.Frequency)
	}
	if req.GoalPerWeek != nil {
		habit.GoalPerWeek = *req.GoalPerWeek
	}
	if req.ScheduledDays != nil {
		habit.ScheduledDays = strings.ToLower(strings.ReplaceAll(*req.ScheduledDays, " ", ""))
	}
	if req.GoalValue != nil {
		habit.GoalValue = req.GoalValue
	}
	if req.GoalDirection != nil {
		habit.GoalDirection = models.GoalDirection(*req.GoalDirection)
	}
	if req.Unit != nil {
		habit.Unit = utils.Sanitize(strings.TrimSpace(*req.Unit))
	}
	if req.GoalTime != nil {
		habit.GoalTime = strings.TrimSpace(*req.GoalTime)
	}
	if req.GoalTimesByDay != nil {
		habit.GoalTimesByDay = strings.TrimSpace(*req.GoalTimesByDay)
	}
	if req.ToleranceWindow != nil {
		habit.ToleranceWindow = models.ToleranceWindow(*req.ToleranceWindow)
	}
	if req.ToleranceMaxFailures != nil {
		habit.ToleranceMaxFailures = *req.ToleranceMaxFailures
	}
	if req.Order != nil {
		habit.DisplayOrder = *req.Order
	}

	if err := engine.ValidateGoal(*habit); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, err.Error())
		return
	}

	if err := h.store.UpdateHabit(ctx, habit); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to update habit")
		return
	}

	invalidateStatsCache(ownerID)
	utils.Success(ctx, gin.H{
		"habit":      habit,
		"goal_label": engine.DescribeGoal(*habit),
	})
}

// DeleteHabit removes a habit together with its event history.
func (h *HabitController) DeleteHabit(ctx *gin.Context) {
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

	if err := h.store.DeleteHabit(ctx, ownerID, habitID); err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	invalidateStatsCache(ownerID)
	utils.Success(ctx, gin.H{"deleted": true})
}

// ArchiveHabit hides a habit from tracking without touching its history.
func (h *HabitController) ArchiveHabit(ctx *gin.Context) {
	h.setArchived(ctx, true)
}

// UnarchiveHabit brings an archived habit back into tracking.
func (h *HabitController) UnarchiveHabit(ctx *gin.Context) {
	h.setArchived(ctx, false)
}

func (h *HabitController) setArchived(ctx *gin.Context, archived bool) {
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

	habit, err := h.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	habit.Archived = archived
	if err := h.store.UpdateHabit(ctx, habit); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to update habit")
		return
	}

	invalidateStatsCache(ownerID)
	utils.Success(ctx, gin.H{"habit": habit})
}

// ReorderHabits stores a new display order. Habits listed first come first;
// ids that do not belong to the owner are ignored.
func (h *HabitController) ReorderHabits(ctx *gin.Context) {
	var req struct {
		IDs []uint `json:"ids" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	habits, err := h.store.ListHabits(ctx, ownerID, true)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to reorder habits")
		return
	}
	byID := make(map[uint]*models.Habit, len(habits))
	for i := range habits {
		byID[habits[i].ID] = &habits[i]
	}

	position := 0
	for _, id := range utils.UniqueUint(req.IDs) {
		habit, ok := byID[id]
		if !ok {
			continue
		}
		habit.DisplayOrder = position
		position++
		if err := h.store.UpdateHabit(ctx, habit); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to reorder habits")
			return
		}
	}

	utils.Success(ctx, gin.H{"reordered": position})
}

// habitSummary assembles the evaluation view shared by list and detail
// endpoints.
func habitSummary(habit models.Habit, events []models.HabitEvent, today string, lookback int) (gin.H, error) {
	streaks, err := engine.ComputeStreaks(habit, events, today, lookback)
	if err != nil {
		return nil, err
	}

	item := gin.H{
		"habit":          habit,
		"goal_label":     engine.DescribeGoal(habit),
		"current_streak": streaks.Current,
		"longest_streak": streaks.Longest,
		"today":          engine.ResolveDay(habit, today, events, today),
	}

	if habit.Frequency == models.FrequencyWeekly || habit.Frequency == models.FrequencySpecificDays {
		week, err := engine.WeeklyProgress(habit, events, today)
		if err != nil {
			return nil, err
		}
		item["week"] = week
	}
	if report, ok, err := engine.ToleranceStatus(habit, events, today); err != nil {
		return nil, err
	} else if ok {
		item["tolerance"] = report
	}
	return item, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func respondStoreError(ctx *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(ctx, notFoundMsg)
		return
	}
	if utils.Sugar != nil {
		utils.Sugar.Errorf("store failure: %v", err)
	}
	utils.ServerError(ctx)
}

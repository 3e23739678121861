package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/config"
	"github.com/habitd/habitd/engine"
	"github.com/habitd/habitd/models"
	"github.com/habitd/habitd/store"
	"github.com/habitd/habitd/utils"
)

// EventController handles day-level logging: statuses, values, notes and
// the relapse bookkeeping of avoidance habits.
type EventController struct {
	store store.Store
}

// NewEventController creates a new EventController instance.
func NewEventController(st store.Store) *EventController {
	return &EventController{store: st}
}

// ListEvents returns a habit's raw events, optionally narrowed by date
// range and status.
func (e *EventController) ListEvents(ctx *gin.Context) {
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
	if _, err := e.store.GetHabit(ctx, ownerID, habitID); err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	filter := store.EventFilter{From: ctx.Query("from"), To: ctx.Query("to")}
	if filter.From != "" && !engine.ValidDay(filter.From) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid date, expected YYYY-MM-DD")
		return
	}
	if filter.To != "" && !engine.ValidDay(filter.To) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid date, expected YYYY-MM-DD")
		return
	}
	if raw := ctx.Query("status"); raw != "" {
		status := models.EventStatus(raw)
		if !status.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid status value")
			return
		}
		filter.Status = status
	}

	events, err := e.store.ListEvents(ctx, ownerID, habitID, filter)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list events")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	total := len(events)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	utils.Success(ctx, gin.H{
		"items": events[start:end],
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

// GetDay resolves what happened for a habit on one calendar day.
func (e *EventController) GetDay(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habit, day, ok := e.habitAndDay(ctx, ownerID)
	if !ok {
		return
	}

	dayEvents, err := e.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{From: day, To: day})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load day")
		return
	}

	today := ownerClock(ctx).Today()
	payload := gin.H{"day": engine.ResolveDay(*habit, day, dayEvents, today)}

	if habit.Type == models.HabitSchedule {
		goalTime, err := engine.GoalTimeFor(*habit, day)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40011, err.Error())
			return
		}
		payload["goal_time"] = goalTime
	}

	utils.Success(ctx, payload)
}

// PutDay sets the authoritative outcome of a day. The outcome comes either
// from an explicit status or from classifying the logged value; free text
// is run through the entry parser first. Existing events on the day are
// replaced, except avoidance relapses, which only a confirmed completion
// removes.
func (e *EventController) PutDay(ctx *gin.Context) {
	var req struct {
		Status *string  `json:"status"`
		Value  *float64 `json:"value"`
		Note   string   `json:"note"`
		Text   string   `json:"text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habit, day, ok := e.habitAndDay(ctx, ownerID)
	if !ok {
		return
	}

	value := req.Value
	note := utils.Sanitize(strings.TrimSpace(req.Note))
	if req.Text != "" {
		parsed := engine.ParseEntry(req.Text)
		if note == "" {
			note = utils.Sanitize(parsed.Description)
		}
		if parsed.HasTime && value == nil && habit.Type == models.HabitSchedule {
			if hours, err := engine.TimeStringToHours(parsed.TimeOfDay); err == nil {
				value = &hours
			}
		}
	}

	var status models.EventStatus
	if req.Status != nil {
		status = models.EventStatus(*req.Status)
		if !status.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40022, "invalid status value")
			return
		}
		if err := engine.ValidateLoggedValue(*habit, status, value); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40023, err.Error())
			return
		}
	} else {
		if habit.Type == models.HabitAvoidance {
			utils.Error(ctx, http.StatusBadRequest, 40022, "status is required for avoidance habits")
			return
		}
		classified, err := engine.Classify(*habit, day, value)
		if err != nil {
			respondEngineError(ctx, err)
			return
		}
		status = classified
	}

	dayEvents, err := e.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{From: day, To: day})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to write day")
		return
	}

	newEvent := &models.HabitEvent{
		HabitID: habit.ID,
		OwnerID: ownerID,
		Date:    day,
		Status:  status,
		Value:   value,
		Note:    note,
	}

	if habit.Type == models.HabitAvoidance {
		e.putAvoidanceDay(ctx, habit, day, newEvent, dayEvents)
		return
	}

	if err := engine.RunCommands(ctx, replaceDayCommands(e.store, dayEvents, newEvent)); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("day write failed habit=%d date=%s: %v", habit.ID, day, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to write day")
		return
	}

	invalidateStatsCache(ownerID)
	e.respondDay(ctx, habit, day)
}

// putAvoidanceDay applies avoidance semantics: Failed appends a relapse,
// Skipped replaces only non-relapse events, and Completed supersedes
// recorded relapses once the caller confirms.
func (e *EventController) putAvoidanceDay(ctx *gin.Context, habit *models.Habit, day string, newEvent *models.HabitEvent, dayEvents []models.HabitEvent) {
	ownerID, _ := getOwnerID(ctx)
	relapses := engine.RelapsesOn(dayEvents, day)

	var toDelete []models.HabitEvent
	switch newEvent.Status {
	case models.StatusFailed:
		// Relapses accumulate; nothing is replaced.
	case models.StatusCompleted:
		if len(relapses) > 0 && ctx.Query("confirm") != "true" {
			utils.Respond(ctx, http.StatusConflict, 40901,
				"completing this day removes its recorded relapses, retry with confirm=true",
				gin.H{"relapses": relapses})
			return
		}
		toDelete = dayEvents
	case models.StatusSkipped:
		for _, ev := range dayEvents {
			if ev.Status != models.StatusFailed {
				toDelete = append(toDelete, ev)
			}
		}
	}

	if err := engine.RunCommands(ctx, replaceDayCommands(e.store, toDelete, newEvent)); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("avoidance day write failed habit=%d date=%s: %v", habit.ID, day, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to write day")
		return
	}

	invalidateStatsCache(ownerID)
	e.respondDay(ctx, habit, day)
}

// DeleteDay clears a day back to unlogged. For avoidance habits only the
// completion or skip marker is removed; relapses survive.
func (e *EventController) DeleteDay(ctx *gin.Context) {
	ownerID, ok := getOwnerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habit, day, ok := e.habitAndDay(ctx, ownerID)
	if !ok {
		return
	}

	if habit.Type == models.HabitAvoidance {
		dayEvents, err := e.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{From: day, To: day})
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to clear day")
			return
		}
		for _, ev := range dayEvents {
			if ev.Status == models.StatusFailed {
				continue
			}
			if err := e.store.DeleteEvent(ctx, ownerID, ev.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to clear day")
				return
			}
		}
	} else {
		if err := e.store.DeleteEventsOnDay(ctx, ownerID, habit.ID, day); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to clear day")
			return
		}
	}

	invalidateStatsCache(ownerID)
	e.respondDay(ctx, habit, day)
}

// CreateRelapse records one slip of an avoidance habit. Relapses are
// additive; recording one never rewrites history.
func (e *EventController) CreateRelapse(ctx *gin.Context) {
	var req struct {
		Date string `json:"date"`
		Note string `json:"note"`
	}
	// An empty body is a valid request: a relapse today, no note.
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
			return
		}
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
	habit, err := e.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}
	if habit.Type != models.HabitAvoidance {
		utils.Error(ctx, http.StatusBadRequest, 40024, "relapses only apply to avoidance habits")
		return
	}

	day := req.Date
	if day == "" {
		day = ownerClock(ctx).Today()
	}
	if !engine.ValidDay(day) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid date, expected YYYY-MM-DD")
		return
	}

	event := &models.HabitEvent{
		HabitID: habit.ID,
		OwnerID: ownerID,
		Date:    day,
		Status:  models.StatusFailed,
		Note:    utils.Sanitize(strings.TrimSpace(req.Note)),
	}
	if err := e.store.CreateEvent(ctx, event); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to record relapse")
		return
	}

	invalidateStatsCache(ownerID)

	events, err := e.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to record relapse")
		return
	}
	today := ownerClock(ctx).Today()
	payload := gin.H{
		"relapse": event,
		"day":     engine.ResolveDay(*habit, day, events, today),
	}
	if report, ok, err := engine.ToleranceStatus(*habit, events, today); err == nil && ok {
		payload["tolerance"] = report
	}
	utils.Success(ctx, payload)
}

// UpdateRelapse edits the note of a recorded relapse.
func (e *EventController) UpdateRelapse(ctx *gin.Context) {
	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
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

	event, err := e.store.GetEventByUID(ctx, ownerID, ctx.Param("uid"))
	if err != nil {
		respondStoreError(ctx, err, "relapse not found")
		return
	}
	if event.HabitID != habitID || event.Status != models.StatusFailed {
		utils.NotFound(ctx, "relapse not found")
		return
	}

	event.Note = utils.Sanitize(strings.TrimSpace(req.Note))
	if err := e.store.UpdateEvent(ctx, event); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to update relapse")
		return
	}

	utils.Success(ctx, gin.H{"relapse": event})
}

// DeleteRelapse removes one recorded slip.
func (e *EventController) DeleteRelapse(ctx *gin.Context) {
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
	habit, err := e.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return
	}

	event, err := e.store.GetEventByUID(ctx, ownerID, ctx.Param("uid"))
	if err != nil {
		respondStoreError(ctx, err, "relapse not found")
		return
	}
	if event.HabitID != habitID || event.Status != models.StatusFailed {
		utils.NotFound(ctx, "relapse not found")
		return
	}

	if err := e.store.DeleteEvent(ctx, ownerID, event.ID); err != nil {
		respondStoreError(ctx, err, "relapse not found")
		return
	}

	invalidateStatsCache(ownerID)
	e.respondDay(ctx, habit, event.Date)
}

// ParseEntry previews how free text would be split into a time of day and
// a description. Public; parsing has no side effects and never fails.
func (e *EventController) ParseEntry(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	parsed := engine.ParseEntry(req.Text)
	utils.Success(ctx, gin.H{
		"entry":     parsed,
		"canonical": engine.FormatEntry(parsed),
	})
}

// habitAndDay loads the addressed habit and validates the date parameter.
func (e *EventController) habitAndDay(ctx *gin.Context, ownerID uint) (*models.Habit, string, bool) {
	habitID, err := parseID(ctx.Param("id"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid habit id")
		return nil, "", false
	}
	day := ctx.Param("date")
	if !engine.ValidDay(day) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid date, expected YYYY-MM-DD")
		return nil, "", false
	}
	habit, err := e.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		respondStoreError(ctx, err, "habit not found")
		return nil, "", false
	}
	return habit, day, true
}

// respondDay answers a mutation with the day's fresh resolution and the
// habit's updated streaks.
func (e *EventController) respondDay(ctx *gin.Context, habit *models.Habit, day string) {
	ownerID, _ := getOwnerID(ctx)
	events, err := e.store.ListEvents(ctx, ownerID, habit.ID, store.EventFilter{})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load day")
		return
	}
	today := ownerClock(ctx).Today()
	streaks, err := engine.ComputeStreaks(*habit, events, today, config.Get().Engine.StreakLookbackDays)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load day")
		return
	}
	utils.Success(ctx, gin.H{
		"day":            engine.ResolveDay(*habit, day, events, today),
		"current_streak": streaks.Current,
		"longest_streak": streaks.Longest,
	})
}

// replaceDayCommands deletes the given events and writes the replacement,
// restoring the deleted events if the write fails.
func replaceDayCommands(st store.Store, toDelete []models.HabitEvent, create *models.HabitEvent) []engine.Command {
	cmds := make([]engine.Command, 0, len(toDelete)+1)
	for i := range toDelete {
		victim := toDelete[i]
		cmds = append(cmds, engine.Command{
			Name: "remove " + string(victim.Status) + " event",
			Apply: func(c context.Context) error {
				return st.DeleteEvent(c, victim.OwnerID, victim.ID)
			},
			Compensate: func(c context.Context) error {
				restored := victim
				restored.ID = 0
				return st.CreateEvent(c, &restored)
			},
		})
	}
	cmds = append(cmds, engine.Command{
		Name: "write day event",
		Apply: func(c context.Context) error {
			return st.CreateEvent(c, create)
		},
	})
	return cmds
}

func respondEngineError(ctx *gin.Context, err error) {
	var ce *engine.ConfigurationError
	if errors.As(err, &ce) {
		utils.Error(ctx, http.StatusBadRequest, 40011, ce.Error())
		return
	}
	var ve *engine.ValidationError
	if errors.As(err, &ve) {
		utils.Error(ctx, http.StatusBadRequest, 40023, ve.Error())
		return
	}
	if utils.Sugar != nil {
		utils.Sugar.Errorf("evaluation failed: %v", err)
	}
	utils.ServerError(ctx)
}

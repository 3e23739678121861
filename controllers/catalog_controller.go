package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/habitd/habitd/engine"
	"github.com/habitd/habitd/models"
	"github.com/habitd/habitd/utils"
)

// CatalogController serves the static vocabulary clients build forms and
// trophy views from. Everything here is public and read-only.
type CatalogController struct{}

func NewCatalogController() *CatalogController { return &CatalogController{} }

// GetMilestoneCatalog returns every defined milestone with its metric and
// target, in display order.
func (c *CatalogController) GetMilestoneCatalog(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"milestones": engine.Catalog()})
}

// GetHabitOptions returns the accepted enumeration values for habit
// configuration.
func (c *CatalogController) GetHabitOptions(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"types": []models.HabitType{
			models.HabitSimple,
			models.HabitQuantity,
			models.HabitDuration,
			models.HabitSchedule,
			models.HabitAvoidance,
		},
		"frequencies": []models.Frequency{
			models.FrequencyDaily,
			models.FrequencyWeekly,
			models.FrequencySpecificDays,
		},
		"directions": gin.H{
			"value": []models.GoalDirection{models.DirectionAtLeast, models.DirectionNoMoreThan},
			"time":  []models.GoalDirection{models.DirectionBy, models.DirectionAfter},
		},
		"tolerance_windows": []models.ToleranceWindow{
			models.ToleranceWeekly,
			models.ToleranceMonthly,
		},
		"weekdays": models.WeekdayKeys,
		"statuses": []models.EventStatus{
			models.StatusCompleted,
			models.StatusSkipped,
			models.StatusFailed,
		},
	})
}

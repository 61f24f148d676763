package handlers

import (
	"net/http"
	"time"

	"voicebook/config"
	"voicebook/models"
	"voicebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeedSlotsHandler bulk-creates the slot catalogue: every configured time on
// every day in the window. Existing (date, time) pairs are left untouched, so
// re-seeding never resets availability.
func (hb *HandlerBundle) SeedSlotsHandler(c *gin.Context) {
	var input struct {
		Days  int      `json:"days"`
		Times []string `json:"times"`
	}
	// Body is optional; config supplies defaults.
	_ = c.ShouldBindJSON(&input)

	days := input.Days
	if days <= 0 {
		days = config.AppConfig.SlotSeedDays
	}
	times := input.Times
	if len(times) == 0 {
		times = config.AppConfig.SlotTimes
	}

	slots := BuildSlotCatalogue(time.Now(), days, times, config.AppConfig.AppointmentDuration)

	created, err := hb.SlotRepo.Seed(c.Request.Context(), slots)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to seed slots", err.Error())
		return
	}

	utils.GetLogger().Info("slot catalogue seeded",
		zap.Int("created", created), zap.Int("window_days", days))
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"total":   len(slots),
	})
}

// BuildSlotCatalogue produces one slot per (day, time) over the window
// starting today.
func BuildSlotCatalogue(from time.Time, days int, times []string, durationMinutes int) []models.Slot {
	now := from.UTC()
	slots := make([]models.Slot, 0, days*len(times))
	for d := 0; d < days; d++ {
		date := now.AddDate(0, 0, d).Format(utils.DateLayout)
		for _, t := range times {
			slots = append(slots, models.Slot{
				ID:              uuid.New().String(),
				Date:            date,
				Time:            t,
				DurationMinutes: durationMinutes,
				Available:       true,
				CreatedAt:       now,
			})
		}
	}
	return slots
}

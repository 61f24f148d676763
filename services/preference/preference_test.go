package preference

import (
	"testing"

	"voicebook/models"
	"voicebook/utils"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBucketsTimeOfDay(t *testing.T) {
	cases := []struct {
		time   string
		bucket string
	}{
		{"06:00", utils.Morning},
		{"09:00", utils.Morning},
		{"11:59", utils.Morning},
		{"12:00", utils.Afternoon},
		{"16:59", utils.Afternoon},
		{"17:00", utils.Evening},
		{"22:30", utils.Evening},
		{"05:00", utils.Evening},
	}
	for _, tc := range cases {
		p := Update(models.Preferences{}, "2026-01-27", tc.time)
		assert.Equal(t, tc.bucket, p.PreferredTimeOfDay, "time %s", tc.time)
	}
}

func TestUpdateMostRecentBucketWins(t *testing.T) {
	p := Update(models.Preferences{}, "2026-01-27", "09:00")
	p = Update(p, "2026-01-28", "14:00")
	assert.Equal(t, utils.Afternoon, p.PreferredTimeOfDay)

	p = Update(p, "2026-01-29", "10:00")
	assert.Equal(t, utils.Morning, p.PreferredTimeOfDay)
}

func TestUpdatePreferredDaysRecencyOrder(t *testing.T) {
	// 2026-01-26 Mon, 27 Tue, 28 Wed, 29 Thu.
	p := Update(models.Preferences{}, "2026-01-26", "09:00")
	p = Update(p, "2026-01-27", "09:00")
	p = Update(p, "2026-01-28", "09:00")
	assert.Equal(t, []string{"Wednesday", "Tuesday", "Monday"}, p.PreferredDays)

	// A fourth weekday evicts the oldest.
	p = Update(p, "2026-01-29", "09:00")
	assert.Equal(t, []string{"Thursday", "Wednesday", "Tuesday"}, p.PreferredDays)
}

func TestUpdateDeduplicatesDays(t *testing.T) {
	p := Update(models.Preferences{}, "2026-01-26", "09:00") // Monday
	p = Update(p, "2026-01-27", "09:00")                     // Tuesday
	p = Update(p, "2026-02-02", "09:00")                     // Monday again
	assert.Equal(t, []string{"Monday", "Tuesday"}, p.PreferredDays)
}

func TestUpdateAlwaysRecordsLastAppointment(t *testing.T) {
	p := Update(models.Preferences{}, "2026-01-27", "14:00")
	assert.Equal(t, "2026-01-27", p.LastAppointmentDate)
	assert.Equal(t, "14:00", p.LastAppointmentTime)

	p = Update(p, "2026-01-29", "09:00")
	assert.Equal(t, "2026-01-29", p.LastAppointmentDate)
	assert.Equal(t, "09:00", p.LastAppointmentTime)
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	prev := Update(models.Preferences{}, "2026-01-26", "09:00")
	Update(prev, "2026-01-27", "14:00")
	assert.Equal(t, utils.Morning, prev.PreferredTimeOfDay)
	assert.Equal(t, "2026-01-26", prev.LastAppointmentDate)
}

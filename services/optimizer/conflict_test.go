package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Shiki0138/sms-sub001/models"
)

func TestIsAvailableHalfOpenOverlap(t *testing.T) {
	reservation := confirmed("s1", at("2026-09-07", 10, 0), 60) // 10:00–11:00

	cases := []struct {
		name      string
		start     time.Time
		end       time.Time
		available bool
	}{
		{"fully before", at("2026-09-07", 9, 0), at("2026-09-07", 9, 30), true},
		{"touching start boundary", at("2026-09-07", 9, 0), at("2026-09-07", 10, 0), true},
		{"overlapping head", at("2026-09-07", 9, 30), at("2026-09-07", 10, 30), false},
		{"contained", at("2026-09-07", 10, 15), at("2026-09-07", 10, 45), false},
		{"containing", at("2026-09-07", 9, 30), at("2026-09-07", 11, 30), false},
		{"overlapping tail", at("2026-09-07", 10, 30), at("2026-09-07", 11, 30), false},
		{"touching end boundary", at("2026-09-07", 11, 0), at("2026-09-07", 11, 30), true},
		{"fully after", at("2026-09-07", 12, 0), at("2026-09-07", 13, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := isAvailable(tc.start, tc.end, []models.Reservation{reservation})
			assert.Equal(t, tc.available, got)
		})
	}
}

func TestIsAvailableDefaultsMissingEndToOneHour(t *testing.T) {
	// No explicit end time: treated as 10:00–11:00.
	open := models.Reservation{
		ID:        "r1",
		StaffID:   "s1",
		StartTime: at("2026-09-07", 10, 0),
		Status:    models.StatusConfirmed,
	}

	assert.False(t, isAvailable(at("2026-09-07", 10, 30), at("2026-09-07", 11, 0), []models.Reservation{open}))
	assert.True(t, isAvailable(at("2026-09-07", 11, 0), at("2026-09-07", 11, 30), []models.Reservation{open}))
}

func TestIsAvailableExactGapBetweenReservations(t *testing.T) {
	reservations := []models.Reservation{
		confirmed("s1", at("2026-09-07", 10, 0), 60), // 10:00–11:00
		confirmed("s1", at("2026-09-07", 11, 30), 60), // 11:30–12:30
	}

	// A 30-minute service fits exactly between the two bookings.
	assert.True(t, isAvailable(at("2026-09-07", 11, 0), at("2026-09-07", 11, 30), reservations))
	// But not on top of the first one.
	assert.False(t, isAvailable(at("2026-09-07", 10, 30), at("2026-09-07", 11, 0), reservations))
}

func TestIsAvailableEmptySchedule(t *testing.T) {
	assert.True(t, isAvailable(at("2026-09-07", 9, 0), at("2026-09-07", 17, 0), nil))
}

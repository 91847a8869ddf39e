package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiki0138/sms-sub001/models"
)

func validated(t *testing.T, req models.BookingRequest) *validatedRequest {
	t.Helper()
	v, err := validateBookingRequest(req)
	require.NoError(t, err)
	return v
}

func TestSlotConfidencePreferredWindowBonus(t *testing.T) {
	svc := newTestService(nil, nil)
	req := validated(t, models.BookingRequest{
		ServiceDescription: "ヘッドスパ",
		EstimatedDuration:  60,
		PreferredDate:      "2026-09-07",
		PreferredTimeRange: &models.TimeRange{Start: "10:00", End: "12:00"},
	})

	inWindow := candidateSlot{Start: at("2026-09-07", 11, 0), End: at("2026-09-07", 12, 0)}
	outOfWindow := candidateSlot{Start: at("2026-09-07", 14, 0), End: at("2026-09-07", 15, 0)}

	assert.InDelta(t, 0.7, svc.slotConfidence(inWindow, 0.5, req, nil), 1e-9)
	assert.InDelta(t, 0.5, svc.slotConfidence(outOfWindow, 0.5, req, nil), 1e-9)

	// Range is hour-inclusive on both ends.
	boundary := candidateSlot{Start: at("2026-09-07", 12, 30), End: at("2026-09-07", 13, 30)}
	assert.InDelta(t, 0.7, svc.slotConfidence(boundary, 0.5, req, nil), 1e-9)
}

func TestSlotConfidenceBufferBonus(t *testing.T) {
	svc := newTestService(nil, nil)
	req := validated(t, models.BookingRequest{
		ServiceDescription: "ヘッドスパ",
		EstimatedDuration:  30,
		PreferredDate:      "2026-09-07",
	})
	reservations := []models.Reservation{
		confirmed("s1", at("2026-09-07", 10, 0), 60), // ends 11:00
	}

	// 30-minute gap earns the buffer bonus.
	spaced := candidateSlot{Start: at("2026-09-07", 11, 30), End: at("2026-09-07", 12, 0)}
	assert.InDelta(t, 0.6, svc.slotConfidence(spaced, 0.5, req, reservations), 1e-9)

	// Back-to-back is allowed but earns nothing; no penalty either.
	tight := candidateSlot{Start: at("2026-09-07", 11, 0), End: at("2026-09-07", 11, 30)}
	assert.InDelta(t, 0.5, svc.slotConfidence(tight, 0.5, req, reservations), 1e-9)
}

func TestSlotConfidenceEndOfDayLongServicePenalty(t *testing.T) {
	svc := newTestService(nil, nil)
	long := validated(t, models.BookingRequest{
		ServiceDescription: "縮毛矯正",
		EstimatedDuration:  180,
		PreferredDate:      "2026-09-07",
	})
	short := validated(t, models.BookingRequest{
		ServiceDescription: "カット",
		EstimatedDuration:  60,
		PreferredDate:      "2026-09-07",
	})

	lateLong := candidateSlot{Start: at("2026-09-07", 15, 0), End: at("2026-09-07", 18, 0)}
	assert.InDelta(t, 0.3, svc.slotConfidence(lateLong, 0.5, long, nil), 1e-9)

	earlyLong := candidateSlot{Start: at("2026-09-07", 9, 0), End: at("2026-09-07", 12, 0)}
	assert.InDelta(t, 0.5, svc.slotConfidence(earlyLong, 0.5, long, nil), 1e-9)

	// A short service ending late is fine.
	lateShort := candidateSlot{Start: at("2026-09-07", 17, 0), End: at("2026-09-07", 18, 0)}
	assert.InDelta(t, 0.5, svc.slotConfidence(lateShort, 0.5, short, nil), 1e-9)
}

func TestSlotConfidenceClampedToUnitInterval(t *testing.T) {
	svc := newTestService(nil, nil)
	req := validated(t, models.BookingRequest{
		ServiceDescription: "カット",
		EstimatedDuration:  60,
		PreferredDate:      "2026-09-07",
		PreferredTimeRange: &models.TimeRange{Start: "09:00", End: "18:00"},
	})
	reservations := []models.Reservation{
		confirmed("s1", at("2026-09-07", 9, 0), 30),
	}

	// 1.0 suitability + window bonus + buffer bonus would exceed 1.
	slot := candidateSlot{Start: at("2026-09-07", 11, 0), End: at("2026-09-07", 12, 0)}
	got := svc.slotConfidence(slot, 1.0, req, reservations)
	assert.Equal(t, 1.0, got)

	// And a deep penalty can never push below 0.
	long := validated(t, models.BookingRequest{
		ServiceDescription: "縮毛矯正",
		EstimatedDuration:  180,
		PreferredDate:      "2026-09-07",
	})
	late := candidateSlot{Start: at("2026-09-07", 16, 0), End: at("2026-09-07", 19, 0)}
	assert.GreaterOrEqual(t, svc.slotConfidence(late, 0.1, long, nil), 0.0)
}

func TestValidateBookingRequestTimeRange(t *testing.T) {
	_, err := validateBookingRequest(models.BookingRequest{
		ServiceDescription: "カット",
		EstimatedDuration:  60,
		PreferredDate:      "2026-09-07",
		PreferredTimeRange: &models.TimeRange{Start: "25:00", End: "12:00"},
	})
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = validateBookingRequest(models.BookingRequest{
		ServiceDescription: "カット",
		EstimatedDuration:  60,
		PreferredDate:      "09/07/2026",
	})
	require.Error(t, err)
	assert.ErrorAs(t, err, &vErr)
}

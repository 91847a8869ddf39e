package optimizer

import (
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

// slotConfidence combines the staff suitability with time-specific
// adjustments into the final per-slot score, clamped to [0,1].
func (svc *DefaultOptimizerService) slotConfidence(
	slot candidateSlot,
	suitability float64,
	req *validatedRequest,
	staffReservations []models.Reservation,
) float64 {
	confidence := suitability

	// Preferred window match: hour-of-day check, range inclusive.
	if req.hasPreference {
		hour := slot.Start.Hour()
		if hour >= req.prefStartHour && hour <= req.prefEndHour {
			confidence += svc.Weights.PreferredWindowBonus
		}
	}

	// Buffer bonus: reward spacing after the previous reservation. A tight
	// or zero gap carries no penalty.
	if prev, ok := previousReservation(slot.Start, staffReservations); ok {
		gap := slot.Start.Sub(prev.ResolvedEnd())
		if gap >= time.Duration(svc.Weights.MinBufferMinutes)*time.Minute {
			confidence += svc.Weights.BufferBonus
		}
	}

	// Long services pushed against closing time tend to overrun.
	if slot.End.Hour() >= businessCloseHour-1 && req.EstimatedDuration > svc.Weights.LongServiceMinutes {
		confidence -= svc.Weights.EndOfDayPenalty
	}

	return clamp01(confidence)
}

// previousReservation returns the reservation with the latest start time
// strictly before the candidate start.
func previousReservation(candidateStart time.Time, reservations []models.Reservation) (models.Reservation, bool) {
	var prev models.Reservation
	found := false
	for _, r := range reservations {
		if !r.StartTime.Before(candidateStart) {
			continue
		}
		if !found || r.StartTime.After(prev.StartTime) {
			prev = r
			found = true
		}
	}
	return prev, found
}

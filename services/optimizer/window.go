package optimizer

import "time"

// candidateSlot is a [Start, End) interval under consideration for booking.
type candidateSlot struct {
	Start time.Time
	End   time.Time
}

// generateCandidateSlots enumerates every slot start inside business hours at
// the fixed 30-minute granularity. End-of-day starts whose service would run
// past closing are still generated; the confidence scorer penalizes them
// instead of rejecting them.
func generateCandidateSlots(date time.Time, duration time.Duration) []candidateSlot {
	open := time.Date(date.Year(), date.Month(), date.Day(), businessOpenHour, 0, 0, 0, date.Location())
	close := time.Date(date.Year(), date.Month(), date.Day(), businessCloseHour, 0, 0, 0, date.Location())

	var slots []candidateSlot
	for t := open; t.Before(close); t = t.Add(slotIntervalMinutes * time.Minute) {
		slots = append(slots, candidateSlot{Start: t, End: t.Add(duration)})
	}
	return slots
}

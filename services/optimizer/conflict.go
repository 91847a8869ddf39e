package optimizer

import (
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

// isAvailable reports whether the candidate interval is free of conflicts
// with the given staff member's reservations. Intervals are half-open:
// touching boundaries do not conflict. Reservations without an explicit end
// time get the one-hour default applied before the comparison.
func isAvailable(candidateStart, candidateEnd time.Time, staffReservations []models.Reservation) bool {
	for _, r := range staffReservations {
		if candidateStart.Before(r.ResolvedEnd()) && candidateEnd.After(r.StartTime) {
			return false
		}
	}
	return true
}

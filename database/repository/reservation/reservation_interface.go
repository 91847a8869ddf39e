package reservationRepo

import (
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

// ReservationRepository exposes the batched reservation reads the optimizer
// issues. Implementations must return results in a single query per call; the
// engine never queries per candidate slot.
type ReservationRepository interface {
	// ListByDate returns reservations starting on the given calendar day,
	// optionally filtered by status. An empty status list means all statuses.
	ListByDate(date time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error)
	// ListByDateRange returns reservations with start times in [from, to).
	ListByDateRange(from, to time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error)
	// ListForCustomer returns up to limit reservations for the customer,
	// most recent first.
	ListForCustomer(customerID string, limit int64) ([]models.Reservation, error)
}

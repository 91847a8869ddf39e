package models

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
type ReservationStatus string

const (
	StatusTentative ReservationStatus = "TENTATIVE"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusNoShow    ReservationStatus = "NO_SHOW"
)

// OccupyingStatuses are the statuses that block a time interval for a staff
// member. Completed, cancelled and no-show records are historical signal only.
var OccupyingStatuses = []ReservationStatus{StatusConfirmed, StatusTentative}

// Reservation is an immutable-once-created booking record.
type Reservation struct {
	ID         string            `bson:"id" json:"id"`
	StaffID    string            `bson:"staff_id" json:"staffId"`
	CustomerID string            `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	StartTime  time.Time         `bson:"start_time" json:"startTime"`
	EndTime    *time.Time        `bson:"end_time,omitempty" json:"endTime,omitempty"` // nil means start + 1h
	Status     ReservationStatus `bson:"status" json:"status"`
}

// ResolvedEnd returns the reservation end, applying the one-hour default when
// no explicit end time was recorded.
func (r Reservation) ResolvedEnd() time.Time {
	if r.EndTime != nil {
		return *r.EndTime
	}
	return r.StartTime.Add(time.Hour)
}

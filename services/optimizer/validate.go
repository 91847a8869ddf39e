package optimizer

import (
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

const (
	minDurationMinutes = 15
	maxDurationMinutes = 480
)

// validatedRequest carries a BookingRequest with its string fields parsed
// once at the boundary.
type validatedRequest struct {
	models.BookingRequest
	date          time.Time
	duration      time.Duration
	prefStartHour int
	prefEndHour   int
	hasPreference bool
}

// validateBookingRequest rejects malformed input before any store read.
func validateBookingRequest(req models.BookingRequest) (*validatedRequest, error) {
	if req.EstimatedDuration < minDurationMinutes || req.EstimatedDuration > maxDurationMinutes {
		return nil, NewValidationError("estimatedDuration", "must be between 15 and 480 minutes")
	}
	if req.Flexibility < 0 || req.Flexibility > 1 {
		return nil, NewValidationError("flexibility", "must be between 0 and 1")
	}

	date, err := time.ParseInLocation("2006-01-02", req.PreferredDate, time.Local)
	if err != nil {
		return nil, NewValidationError("preferredDate", "must be formatted as YYYY-MM-DD")
	}

	v := &validatedRequest{
		BookingRequest: req,
		date:           date,
		duration:       time.Duration(req.EstimatedDuration) * time.Minute,
	}

	if tr := req.PreferredTimeRange; tr != nil {
		start, err := time.Parse("15:04", tr.Start)
		if err != nil {
			return nil, NewValidationError("preferredTimeRange.start", "must be formatted as HH:MM")
		}
		end, err := time.Parse("15:04", tr.End)
		if err != nil {
			return nil, NewValidationError("preferredTimeRange.end", "must be formatted as HH:MM")
		}
		if end.Before(start) {
			return nil, NewValidationError("preferredTimeRange", "end must not precede start")
		}
		v.prefStartHour = start.Hour()
		v.prefEndHour = end.Hour()
		v.hasPreference = true
	}

	return v, nil
}

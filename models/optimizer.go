package models

import "time"

// CustomerPriority classifies the customer for scoring purposes.
type CustomerPriority string

const (
	PriorityVIP     CustomerPriority = "VIP"
	PriorityRegular CustomerPriority = "REGULAR"
	PriorityNew     CustomerPriority = "NEW"
)

// TimeRange is an optional preferred window expressed as "HH:MM" strings.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookingRequest is the input to the booking optimizer.
type BookingRequest struct {
	ServiceDescription string           `json:"serviceDescription" binding:"required"`
	EstimatedDuration  int              `json:"estimatedDuration" binding:"required"` // minutes, 15–480
	PreferredDate      string           `json:"preferredDate" binding:"required"`     // "2006-01-02"
	PreferredTimeRange *TimeRange       `json:"preferredTimeRange,omitempty"`
	CustomerID         string           `json:"customerId,omitempty"`
	CustomerPriority   CustomerPriority `json:"customerPriority,omitempty"`
	// Flexibility is accepted for forward compatibility; no scoring path
	// reads it yet.
	Flexibility float64 `json:"flexibility,omitempty"`
}

// OptimalBookingSuggestion is a ranked (slot, staff) proposal. Suggestions are
// ephemeral and never persisted.
type OptimalBookingSuggestion struct {
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	StaffID    string    `json:"staffId"`
	StaffName  string    `json:"staffName"`
	Confidence float64   `json:"confidence"` // [0,1]
	Reasons    []string  `json:"reasons"`
}

// NoShowFactor describes one contribution to a no-show probability.
type NoShowFactor struct {
	Factor      string  `json:"factor"`
	Impact      float64 `json:"impact"` // signed delta on the base rate
	Description string  `json:"description"`
}

// NoShowPrediction is the result of the no-show risk computation.
type NoShowPrediction struct {
	CustomerID      string         `json:"customerId"`
	Probability     float64        `json:"probability"` // [0, 0.9]
	Factors         []NoShowFactor `json:"factors"`
	Recommendations []string       `json:"recommendations"`
}

// HourlyDemand is the predicted booking volume for a single hour bucket.
type HourlyDemand struct {
	Hour              int     `json:"hour"`
	PredictedBookings int     `json:"predictedBookings"`
	Confidence        float64 `json:"confidence"`
}

// DemandTrends reports the multipliers used for a day's forecast.
type DemandTrends struct {
	Seasonal      float64 `json:"seasonal"`
	WeeklyPattern float64 `json:"weeklyPattern"`
	MonthlyTrend  float64 `json:"monthlyTrend"`
}

// DemandPrediction is the per-day forecast output.
type DemandPrediction struct {
	Date           string         `json:"date"` // "2006-01-02"
	HourlyDemand   []HourlyDemand `json:"hourlyDemand"`
	TotalPredicted int            `json:"totalPredicted"`
	Trends         DemandTrends   `json:"trends"`
}

// StaffUtilization is the per-staff portion of the availability analysis.
type StaffUtilization struct {
	StaffID     string  `json:"staffId"`
	StaffName   string  `json:"staffName"`
	BookedSlots int     `json:"bookedSlots"`
	Utilization float64 `json:"utilization"`
}

// AvailabilityAnalysis is a read-only aggregate over one day's schedule,
// assuming 9 working hours and two 30-minute slots per hour per staff member.
type AvailabilityAnalysis struct {
	Date             string             `json:"date"`
	TotalSlots       int                `json:"totalSlots"`
	BookedSlots      int                `json:"bookedSlots"`
	AvailableSlots   int                `json:"availableSlots"`
	Utilization      float64            `json:"utilization"`
	StaffUtilization []StaffUtilization `json:"staffUtilization"`
	PeakHours        []int              `json:"peakHours"`
}

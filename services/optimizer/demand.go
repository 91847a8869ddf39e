package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

// historyMonths is how far back the forecaster reads booking history.
const historyMonths = 3

// seasonalFactors is the fixed per-month demand multiplier. March and
// December carry the graduation/year-end rush; weekends are additionally
// boosted by WeekendDemand.
var seasonalFactors = [12]float64{
	1: 0.9, 2: 0.85, 3: 1.1, 4: 1.05, 5: 0.95, 6: 0.9,
	7: 1.0, 8: 0.95, 9: 0.9, 10: 1.0, 11: 1.05, 0: 1.25, // index 0 = December via month%12
}

func seasonalFactor(m time.Month) float64 {
	return seasonalFactors[int(m)%12]
}

// PredictDemand projects per-hour booking volume for each day in
// [startDate, endDate] from weekday-matched historical averages, the seasonal
// table and a flat linear growth assumption. Range-length validation is the
// caller's responsibility.
func (svc *DefaultOptimizerService) PredictDemand(startDate, endDate time.Time) ([]models.DemandPrediction, error) {
	if endDate.Before(startDate) {
		return nil, NewValidationError("endDate", "must not precede startDate")
	}

	now := time.Now()
	history, err := svc.ReservationRepo.ListByDateRange(now.AddDate(0, -historyMonths, 0), now, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}
	index := buildHistoryIndex(history)

	var predictions []models.DemandPrediction
	for d := dayOf(startDate); !d.After(dayOf(endDate)); d = d.AddDate(0, 0, 1) {
		predictions = append(predictions, svc.predictDay(d, now, index))
	}
	return predictions, nil
}

// predictDay computes one day's forecast from weekday-matched history.
func (svc *DefaultOptimizerService) predictDay(date, now time.Time, index *historyIndex) models.DemandPrediction {
	weekday := date.Weekday()
	sampleSize := index.weekdayDates[weekday]

	seasonal := seasonalFactor(date.Month())
	weekly := 1.0
	if weekday == time.Saturday || weekday == time.Sunday {
		weekly = svc.Weights.WeekendDemand
	}
	trend := 1 + svc.Weights.TrendPerMonth*float64(monthsBetween(now, date))

	confidence := math.Min(float64(sampleSize)/float64(svc.Weights.FullConfidenceN), 1)

	hourly := make([]models.HourlyDemand, 0, businessCloseHour-businessOpenHour+1)
	total := 0
	for hour := businessOpenHour; hour <= businessCloseHour; hour++ {
		average := 0.0
		if sampleSize > 0 {
			average = float64(index.hourCounts[weekday][hour]) / float64(sampleSize)
		}
		predicted := int(math.Round(average * seasonal * weekly * trend))
		if predicted < 0 {
			predicted = 0
		}
		total += predicted
		hourly = append(hourly, models.HourlyDemand{
			Hour:              hour,
			PredictedBookings: predicted,
			Confidence:        confidence,
		})
	}

	return models.DemandPrediction{
		Date:           date.Format("2006-01-02"),
		HourlyDemand:   hourly,
		TotalPredicted: total,
		Trends: models.DemandTrends{
			Seasonal:      seasonal,
			WeeklyPattern: weekly,
			MonthlyTrend:  trend,
		},
	}
}

// historyIndex partitions history by weekday: distinct calendar days seen per
// weekday, and booking counts per (weekday, start hour).
type historyIndex struct {
	weekdayDates map[time.Weekday]int
	hourCounts   map[time.Weekday]map[int]int
}

func buildHistoryIndex(history []models.Reservation) *historyIndex {
	idx := &historyIndex{
		weekdayDates: make(map[time.Weekday]int),
		hourCounts:   make(map[time.Weekday]map[int]int),
	}
	seenDates := make(map[string]bool)
	for _, r := range history {
		weekday := r.StartTime.Weekday()
		dateKey := r.StartTime.Format("2006-01-02")
		if !seenDates[dateKey] {
			seenDates[dateKey] = true
			idx.weekdayDates[weekday]++
		}
		if idx.hourCounts[weekday] == nil {
			idx.hourCounts[weekday] = make(map[int]int)
		}
		idx.hourCounts[weekday][r.StartTime.Hour()]++
	}
	return idx
}

// monthsBetween counts whole calendar months from a to b, floored at zero.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

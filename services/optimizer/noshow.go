package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/Shiki0138/sms-sub001/models"
)

// customerHistoryLimit bounds how much history the predictor reads per call.
const customerHistoryLimit = 100

// PredictNoShow scores the probability that a customer fails to appear on the
// given date. The model adds independent factor deltas onto a base rate and
// caps the total at 0.9. The arithmetic is an inherited heuristic, not a
// calibrated probabilistic model; factors are reported individually so the
// caller can see what moved the number.
func (svc *DefaultOptimizerService) PredictNoShow(customerID string, reservationDate time.Time) (*models.NoShowPrediction, error) {
	if customerID == "" {
		return nil, NewValidationError("customerId", "must not be empty")
	}

	exists, err := svc.CustomerRepo.Exists(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer: %w", err)
	}
	if !exists {
		return nil, &CustomerNotFoundError{CustomerID: customerID}
	}

	history, err := svc.ReservationRepo.ListForCustomer(customerID, customerHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer history: %w", err)
	}

	// First-time customers get a fixed baseline, not the general formula.
	if len(history) == 0 {
		return &models.NoShowPrediction{
			CustomerID:  customerID,
			Probability: svc.Weights.NewCustomerBaseline,
			Factors: []models.NoShowFactor{{
				Factor:      "new_customer",
				Impact:      svc.Weights.NewCustomerBaseline,
				Description: "新規顧客（来店履歴なし）",
			}},
			Recommendations: []string{"来店前に電話での事前確認を推奨"},
		}, nil
	}

	w := svc.Weights
	probability := w.NoShowBase
	var factors []models.NoShowFactor

	// Historical no-show rate.
	noShows := countByStatus(history, models.StatusNoShow)
	rate := float64(noShows) / float64(len(history))
	if rate > 0 {
		impact := math.Min(rate*w.HistoryRateWeight, w.HistoryRateCap)
		probability += impact
		factors = append(factors, models.NoShowFactor{
			Factor:      "history_no_show_rate",
			Impact:      impact,
			Description: fmt.Sprintf("過去の無断キャンセル率 %.0f%%", rate*100),
		})
	}

	// Recent cancellation pattern over the last 10 reservations.
	recent := history
	if len(recent) > 10 {
		recent = recent[:10]
	}
	cancels := countByStatus(recent, models.StatusCancelled) + countByStatus(recent, models.StatusNoShow)
	if cancels > 3 {
		impact := math.Min(float64(cancels)*w.CancelCountWeight, w.CancelCountCap)
		probability += impact
		factors = append(factors, models.NoShowFactor{
			Factor:      "recent_cancellations",
			Impact:      impact,
			Description: fmt.Sprintf("直近10件中%d件のキャンセル・無断キャンセル", cancels),
		})
	}

	// Day-of-week pattern for the target weekday.
	dowTotal, dowNoShows := 0, 0
	for _, r := range history {
		if r.StartTime.Weekday() != reservationDate.Weekday() {
			continue
		}
		dowTotal++
		if r.Status == models.StatusNoShow {
			dowNoShows++
		}
	}
	if dowTotal > 0 {
		dowRate := float64(dowNoShows) / float64(dowTotal)
		if dowRate > w.WeekdayRateFloor {
			impact := (dowRate - w.WeekdayRateFloor) * w.WeekdayRateWeight
			probability += impact
			factors = append(factors, models.NoShowFactor{
				Factor:      "weekday_pattern",
				Impact:      impact,
				Description: fmt.Sprintf("%sの無断キャンセル率が高い傾向", japaneseWeekday(reservationDate.Weekday())),
			})
		}
	}

	// Long absence since the last visit. History is most-recent-first.
	daysSince := 365.0
	if last := history[0].StartTime; !last.IsZero() {
		daysSince = time.Since(last).Hours() / 24
	}
	if daysSince > float64(w.AbsenceFloorDays) {
		impact := math.Min((daysSince-float64(w.AbsenceFloorDays))*w.AbsenceDayWeight, w.AbsenceCap)
		probability += impact
		factors = append(factors, models.NoShowFactor{
			Factor:      "long_absence",
			Impact:      impact,
			Description: fmt.Sprintf("前回来店から%d日経過", int(daysSince)),
		})
	}

	// Weekend bookings show up more reliably; the only protective factor.
	if wd := reservationDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
		probability -= w.WeekendDiscount
		factors = append(factors, models.NoShowFactor{
			Factor:      "weekend",
			Impact:      -w.WeekendDiscount,
			Description: "週末の予約は来店率が高い傾向",
		})
	}

	if probability > w.NoShowCap {
		probability = w.NoShowCap
	}
	if probability < 0 {
		probability = 0
	}

	return &models.NoShowPrediction{
		CustomerID:      customerID,
		Probability:     probability,
		Factors:         factors,
		Recommendations: svc.noShowRecommendations(probability, len(history)),
	}, nil
}

// noShowRecommendations evaluates the mitigation tiers independently; several
// may fire together.
func (svc *DefaultOptimizerService) noShowRecommendations(probability float64, visitCount int) []string {
	var recs []string
	if probability > 0.4 {
		recs = append(recs,
			"前日に電話での来店確認を行う",
			"キャンセルに備えて代替の予約枠を用意しておく")
	}
	if probability > 0.25 {
		recs = append(recs, "前日にメッセージでリマインダーを送る")
	}
	if visitCount < 3 {
		recs = append(recs, "新規・来店回数の少ない顧客のため丁寧なフォローを行う")
	}
	return recs
}

func countByStatus(reservations []models.Reservation, status models.ReservationStatus) int {
	count := 0
	for _, r := range reservations {
		if r.Status == status {
			count++
		}
	}
	return count
}

func japaneseWeekday(wd time.Weekday) string {
	names := [...]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}
	return names[wd]
}

package optimizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/Shiki0138/sms-sub001/models"
	"github.com/Shiki0138/sms-sub001/utils"

	"go.uber.org/zap"
)

// OptimizeBooking searches the staff/time space for the request's date and
// returns ranked suggestions. An empty result is a valid outcome, not an
// error: it means no staff is active or no slot cleared the confidence gate.
func (svc *DefaultOptimizerService) OptimizeBooking(req models.BookingRequest) ([]models.OptimalBookingSuggestion, error) {
	logger := utils.GetLogger()

	vreq, err := validateBookingRequest(req)
	if err != nil {
		return nil, err
	}

	staff, err := svc.StaffRepo.ListActiveStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to load active staff: %w", err)
	}
	if len(staff) == 0 {
		logger.Info("no active staff for booking optimization", zap.String("date", req.PreferredDate))
		return []models.OptimalBookingSuggestion{}, nil
	}

	occupied, err := svc.ReservationRepo.ListByDate(vreq.date, models.OccupyingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	byStaff := groupByStaff(occupied)

	var suggestions []models.OptimalBookingSuggestion
	for _, rs := range svc.rankStaff(staff, req) {
		staffReservations := byStaff[rs.Staff.ID]
		for _, slot := range generateCandidateSlots(vreq.date, vreq.duration) {
			if !isAvailable(slot.Start, slot.End, staffReservations) {
				continue
			}
			confidence := svc.slotConfidence(slot, rs.Suitability, vreq, staffReservations)
			if confidence <= svc.Weights.MinConfidence {
				continue
			}
			suggestions = append(suggestions, models.OptimalBookingSuggestion{
				StartTime:  slot.Start,
				EndTime:    slot.End,
				StaffID:    rs.Staff.ID,
				StaffName:  rs.Staff.Name,
				Confidence: confidence,
				Reasons:    svc.buildReasons(confidence, slot, req),
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > svc.Weights.MaxSuggestions {
		suggestions = suggestions[:svc.Weights.MaxSuggestions]
	}
	if suggestions == nil {
		suggestions = []models.OptimalBookingSuggestion{}
	}

	logger.Debug("booking optimization finished",
		zap.String("date", req.PreferredDate),
		zap.Int("suggestions", len(suggestions)))
	return suggestions, nil
}

// buildReasons attaches the customer-facing justification strings. Tiers are
// independent and may co-occur; order is fixed: optimality, staff match,
// time-of-day, priority.
func (svc *DefaultOptimizerService) buildReasons(confidence float64, slot candidateSlot, req models.BookingRequest) []string {
	var reasons []string
	if confidence > 0.8 {
		reasons = append(reasons, "最適な時間帯とスタッフの組み合わせ")
	}
	if confidence > 0.6 {
		reasons = append(reasons, "スタッフの専門性がマッチ")
	}
	switch hour := slot.Start.Hour(); {
	case hour >= 10 && hour <= 14:
		reasons = append(reasons, "人気の時間帯")
	case hour >= 15 && hour <= 17:
		reasons = append(reasons, "午後のゆったりした時間帯")
	}
	if req.CustomerPriority == models.PriorityVIP {
		reasons = append(reasons, "VIP優先対応")
	}
	return reasons
}

func groupByStaff(reservations []models.Reservation) map[string][]models.Reservation {
	grouped := make(map[string][]models.Reservation)
	for _, r := range reservations {
		grouped[r.StaffID] = append(grouped[r.StaffID], r)
	}
	return grouped
}

// GetAvailabilityAnalysis aggregates one day's schedule into utilization
// figures, assuming 9 working hours and two 30-minute slots per hour for
// every active staff member.
func (svc *DefaultOptimizerService) GetAvailabilityAnalysis(date time.Time) (*models.AvailabilityAnalysis, error) {
	staff, err := svc.StaffRepo.ListActiveStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to load active staff: %w", err)
	}
	occupied, err := svc.ReservationRepo.ListByDate(date, models.OccupyingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	slotsPerStaff := workingHoursPerDay * slotsPerHour
	totalSlots := len(staff) * slotsPerStaff

	byStaff := groupByStaff(occupied)
	hourCounts := make(map[int]int)
	bookedSlots := 0

	staffUtil := make([]models.StaffUtilization, 0, len(staff))
	for _, s := range staff {
		booked := 0
		for _, r := range byStaff[s.ID] {
			booked += occupiedSlotCount(r)
			hourCounts[r.StartTime.Hour()]++
		}
		bookedSlots += booked
		util := 0.0
		if slotsPerStaff > 0 {
			util = float64(booked) / float64(slotsPerStaff)
		}
		staffUtil = append(staffUtil, models.StaffUtilization{
			StaffID:     s.ID,
			StaffName:   s.Name,
			BookedSlots: booked,
			Utilization: util,
		})
	}

	utilization := 0.0
	if totalSlots > 0 {
		utilization = float64(bookedSlots) / float64(totalSlots)
	}

	return &models.AvailabilityAnalysis{
		Date:             date.Format("2006-01-02"),
		TotalSlots:       totalSlots,
		BookedSlots:      bookedSlots,
		AvailableSlots:   totalSlots - bookedSlots,
		Utilization:      utilization,
		StaffUtilization: staffUtil,
		PeakHours:        peakHours(hourCounts),
	}, nil
}

// occupiedSlotCount converts a reservation's duration into 30-minute slots,
// rounding up so a 45-minute service blocks two.
func occupiedSlotCount(r models.Reservation) int {
	minutes := int(r.ResolvedEnd().Sub(r.StartTime).Minutes())
	if minutes <= 0 {
		return 0
	}
	return (minutes + slotIntervalMinutes - 1) / slotIntervalMinutes
}

// peakHours returns up to the three busiest starting hours, busiest first.
func peakHours(hourCounts map[int]int) []int {
	hours := make([]int, 0, len(hourCounts))
	for h := range hourCounts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if hourCounts[hours[i]] == hourCounts[hours[j]] {
			return hours[i] < hours[j]
		}
		return hourCounts[hours[i]] > hourCounts[hours[j]]
	})
	if len(hours) > 3 {
		hours = hours[:3]
	}
	return hours
}

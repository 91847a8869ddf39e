package optimizer

import (
	"time"

	customerRepo "github.com/Shiki0138/sms-sub001/database/repository/customer"
	reservationRepo "github.com/Shiki0138/sms-sub001/database/repository/reservation"
	staffRepo "github.com/Shiki0138/sms-sub001/database/repository/staff"
	"github.com/Shiki0138/sms-sub001/models"
)

// OptimizerService defines the read-only booking optimization engine. All
// entry points are pure read-then-compute operations, safe to invoke
// concurrently; nothing here mutates staff or reservation records.
type OptimizerService interface {
	OptimizeBooking(req models.BookingRequest) ([]models.OptimalBookingSuggestion, error)
	PredictNoShow(customerID string, reservationDate time.Time) (*models.NoShowPrediction, error)
	PredictDemand(startDate, endDate time.Time) ([]models.DemandPrediction, error)
	GetAvailabilityAnalysis(date time.Time) (*models.AvailabilityAnalysis, error)
}

// DefaultOptimizerService implements OptimizerService on top of the
// collaborator store repositories.
type DefaultOptimizerService struct {
	StaffRepo       staffRepo.StaffRepository
	ReservationRepo reservationRepo.ReservationRepository
	CustomerRepo    customerRepo.CustomerRepository
	Affinity        ServiceAffinityScorer
	Weights         ScoringWeights
}

// NewDefaultOptimizerService wires the engine with the default keyword
// affinity strategy and the default weight table.
func NewDefaultOptimizerService(
	staff staffRepo.StaffRepository,
	reservations reservationRepo.ReservationRepository,
	customers customerRepo.CustomerRepository,
) *DefaultOptimizerService {
	return NewOptimizerServiceWithWeights(staff, reservations, customers, DefaultScoringWeights())
}

// NewOptimizerServiceWithWeights wires the engine with an explicit weight
// table, typically LoadScoringWeights(). The table is shared with the
// keyword affinity scorer so both score from the same coefficients.
func NewOptimizerServiceWithWeights(
	staff staffRepo.StaffRepository,
	reservations reservationRepo.ReservationRepository,
	customers customerRepo.CustomerRepository,
	weights ScoringWeights,
) *DefaultOptimizerService {
	return &DefaultOptimizerService{
		StaffRepo:       staff,
		ReservationRepo: reservations,
		CustomerRepo:    customers,
		Affinity:        &KeywordAffinityScorer{Weights: weights},
		Weights:         weights,
	}
}

package reservationRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shiki0138/sms-sub001/models"
	"github.com/Shiki0138/sms-sub001/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// historyCacheTTL bounds how stale a customer's cached history may get.
const historyCacheTTL = 5 * time.Minute

// CachedReservationRepo decorates a ReservationRepository with a read-through
// Redis cache on customer-history reads. The cache is an explicit, injected
// dependency of the store layer; the optimizer itself stays cache-free.
type CachedReservationRepo struct {
	Inner ReservationRepository
	Cache *redis.Client
}

// NewCachedReservationRepo wraps inner with a Redis-backed history cache.
func NewCachedReservationRepo(inner ReservationRepository, cache *redis.Client) ReservationRepository {
	return &CachedReservationRepo{Inner: inner, Cache: cache}
}

func (repo *CachedReservationRepo) ListByDate(date time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error) {
	return repo.Inner.ListByDate(date, statuses)
}

func (repo *CachedReservationRepo) ListByDateRange(from, to time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error) {
	return repo.Inner.ListByDateRange(from, to, statuses)
}

// ListForCustomer serves customer history from Redis when present, falling
// back to the inner repository on a miss. Cache failures degrade to a direct
// read rather than failing the call.
func (repo *CachedReservationRepo) ListForCustomer(customerID string, limit int64) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	logger := utils.GetLogger()

	key := fmt.Sprintf("resv:history:%s:%d", customerID, limit)
	if cached, err := repo.Cache.Get(ctx, key).Result(); err == nil {
		var reservations []models.Reservation
		if err := json.Unmarshal([]byte(cached), &reservations); err == nil {
			return reservations, nil
		}
		logger.Warn("discarding corrupt history cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		logger.Warn("history cache read failed", zap.String("key", key), zap.Error(err))
	}

	reservations, err := repo.Inner.ListForCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(reservations); err == nil {
		if err := repo.Cache.Set(ctx, key, data, historyCacheTTL).Err(); err != nil {
			logger.Warn("history cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return reservations, nil
}

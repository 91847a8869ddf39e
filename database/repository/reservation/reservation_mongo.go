package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Shiki0138/sms-sub001/database"
	"github.com/Shiki0138/sms-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	reservationColl *mongo.Collection
}

// NewMongoReservationRepo constructs a new instance of MongoReservationRepo.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("salon")
	return &MongoReservationRepo{
		reservationColl: db.Collection("reservations"),
	}
}

// ListByDate returns all reservations starting on the given calendar day.
func (repo *MongoReservationRepo) ListByDate(date time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return repo.ListByDateRange(dayStart, dayStart.AddDate(0, 0, 1), statuses)
}

// ListByDateRange returns reservations with start times in [from, to).
func (repo *MongoReservationRepo) ListByDateRange(from, to time.Time, statuses []models.ReservationStatus) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"start_time": bson.M{"$gte": from, "$lt": to},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	cursor, err := repo.reservationColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching reservations: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeReservations(ctx, cursor)
}

// ListForCustomer returns up to limit reservations for a customer, most
// recent first.
func (repo *MongoReservationRepo) ListForCustomer(customerID string, limit int64) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"customer_id": customerID}
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(limit)
	cursor, err := repo.reservationColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching reservations for customer %s: %w", customerID, err)
	}
	defer cursor.Close(ctx)

	return decodeReservations(ctx, cursor)
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for cursor.Next(ctx) {
		var r models.Reservation
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reservations, nil
}

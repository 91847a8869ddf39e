package staffRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Shiki0138/sms-sub001/database"
	"github.com/Shiki0138/sms-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	staffColl *mongo.Collection
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() StaffRepository {
	db := database.MongoClient.Database("salon")
	return &MongoStaffRepo{
		staffColl: db.Collection("staff"),
	}
}

// ListActiveStaff retrieves all staff members currently accepting bookings.
func (repo *MongoStaffRepo) ListActiveStaff() ([]models.StaffMember, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	cursor, err := repo.staffColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching active staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staff []models.StaffMember
	for cursor.Next(ctx) {
		var s models.StaffMember
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding staff member: %w", err)
		}
		staff = append(staff, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return staff, nil
}

package customerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Shiki0138/sms-sub001/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	customerColl *mongo.Collection
}

// NewMongoCustomerRepo constructs a new instance of MongoCustomerRepo.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database("salon")
	return &MongoCustomerRepo{
		customerColl: db.Collection("customers"),
	}
}

// Exists reports whether a customer record with the given ID is present.
func (repo *MongoCustomerRepo) Exists(customerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.customerColl.CountDocuments(ctx, bson.M{"id": customerID})
	if err != nil {
		return false, fmt.Errorf("error checking customer %s: %w", customerID, err)
	}
	return count > 0, nil
}

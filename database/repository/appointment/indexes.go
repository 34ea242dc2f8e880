package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicport/models"
)

// EnsureIndexes creates the necessary indexes on the appointments
// collection. The partial unique index on (date, time) scoped to live
// statuses is the store-enforced half of the no-double-booking
// guarantee: a second insert for a slot that already has a pending or
// accepted appointment fails with a duplicate-key error.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_live_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []models.Status{models.StatusPending, models.StatusAccepted}},
				}),
		},
		// Primary query patterns: day views and per-patient listings.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("date_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("patient_date_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

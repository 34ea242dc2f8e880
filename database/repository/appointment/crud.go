package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinicport/models"
)

// GetByID retrieves an appointment document by ID.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// SetStatus updates the status and doctor notes of an appointment.
// The filter pins the status the caller decided on, so a transition
// racing a concurrent cancel cannot resurrect a terminal record; a
// zero MatchedCount is disambiguated with a follow-up read.
func (repo *MongoAppointmentRepo) SetStatus(ctx context.Context, id string, from, to models.Status, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}}
	if notes != "" {
		update["$set"].(bson.M)["doctor_notes"] = notes
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, update)
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return ErrStatusChanged
	}
	return nil
}

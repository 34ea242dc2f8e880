package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicport/models"
)

// ListActiveByDate retrieves appointments for a date whose status still
// holds a slot, sorted by slot time.
func (repo *MongoAppointmentRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   date,
		"status": bson.M{"$in": []models.Status{models.StatusPending, models.StatusAccepted}},
	}
	return repo.list(ctx, filter, bson.D{{Key: "time", Value: 1}})
}

// ListByDate retrieves all appointments for a date regardless of
// status, sorted by slot time. Used for the doctor's day sheet.
func (repo *MongoAppointmentRepo) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return repo.list(ctx, bson.M{"date": date}, bson.D{{Key: "time", Value: 1}})
}

// ListByPatient retrieves all appointments owned by an account, newest
// visit first.
func (repo *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}}
	return repo.list(ctx, bson.M{"patient_id": patientID}, sort)
}

func (repo *MongoAppointmentRepo) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

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

// liveSlotFilter matches appointments that currently hold the given
// slot. excludeID (when non-empty) removes the appointment being
// rescheduled from consideration.
func liveSlotFilter(date, slot, excludeID string) bson.M {
	filter := bson.M{
		"date":   date,
		"time":   slot,
		"status": bson.M{"$in": []models.Status{models.StatusPending, models.StatusAccepted}},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// ReserveSlot verifies the slot is free and inserts the appointment in
// a single transaction. The re-check inside the transaction plus the
// partial unique index on (date, time) mean a concurrent writer for
// the same slot gets ErrSlotTaken instead of a silent double booking.
func (repo *MongoAppointmentRepo) ReserveSlot(ctx context.Context, appt *models.Appointment) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// A retry after an ambiguous commit must not conflict with its
		// own earlier insert: the id already being present means the
		// reservation went through.
		if err := repo.coll.FindOne(sc, bson.M{"id": appt.ID}).Err(); err == nil {
			return nil
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("reservation lookup failed: %w", err)
		}

		n, err := repo.coll.CountDocuments(sc, liveSlotFilter(appt.Date, appt.Time, appt.ID))
		if err != nil {
			return fmt.Errorf("slot conflict check failed: %w", err)
		}
		if n > 0 {
			return ErrSlotTaken
		}
		if _, err := repo.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("reservation transaction failed: %w", err)
	}

	return nil
}

// MoveSlot re-reserves a different slot for an existing appointment in
// one transaction. The conflict check skips the appointment's own
// current reservation, and the status is forced back to pending so the
// new slot re-enters the approval pipeline.
func (repo *MongoAppointmentRepo) MoveSlot(ctx context.Context, id string, change SlotChange) (*models.Appointment, error) {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated models.Appointment
	txnFn := func(sc mongo.SessionContext) error {
		if err := repo.coll.FindOne(sc, bson.M{"id": id}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("fetch appointment failed: %w", err)
		}

		n, err := repo.coll.CountDocuments(sc, liveSlotFilter(change.Date, change.Time, id))
		if err != nil {
			return fmt.Errorf("slot conflict check failed: %w", err)
		}
		if n > 0 {
			return ErrSlotTaken
		}

		update := bson.M{"$set": bson.M{
			"date":              change.Date,
			"time":              change.Time,
			"reason":            change.Reason,
			"requires_approval": change.RequiresApproval,
			"is_weekend":        change.IsWeekend,
			"status":            models.StatusPending,
			"updated_at":        time.Now(),
		}}
		if _, err := repo.coll.UpdateOne(sc, bson.M{"id": id}, update); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("update appointment failed: %w", err)
		}
		return repo.coll.FindOne(sc, bson.M{"id": id}).Decode(&updated)
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}

	return &updated, nil
}

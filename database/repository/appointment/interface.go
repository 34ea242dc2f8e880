package appointmentRepo

import (
	"context"
	"errors"

	"clinicport/models"
)

// Sentinel errors the mongo implementation maps store conditions onto.
// The service layer translates these into its own typed errors.
var (
	// ErrSlotTaken signals that another live appointment already holds
	// the requested (date, time) pair.
	ErrSlotTaken = errors.New("slot already reserved")
	// ErrNotFound signals that no appointment exists for the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrStatusChanged signals that a conditional status update lost to
	// a concurrent writer: the appointment no longer holds the status
	// the caller read.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
)

// SlotChange carries the fields a reschedule rewrites in one shot.
type SlotChange struct {
	Date             string
	Time             string
	Reason           string
	RequiresApproval bool
	IsWeekend        bool
}

// AppointmentRepository defines the data access methods used by the
// scheduling engine.
type AppointmentRepository interface {
	// EnsureIndexes creates the collection indexes, including the
	// partial unique index that backs slot reservation.
	EnsureIndexes() error
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListActiveByDate retrieves appointments on a date whose status
	// still holds a slot (pending or accepted).
	ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error)
	// ListByDate retrieves every appointment on a date regardless of status.
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	// ListByPatient retrieves all appointments owned by an account,
	// newest visit first.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// SetStatus moves an appointment from one lifecycle status to
	// another, conditionally: the write only lands if the record still
	// holds the from status. Returns ErrStatusChanged when a concurrent
	// writer got there first.
	SetStatus(ctx context.Context, id string, from, to models.Status, notes string) error
	// ReserveSlot atomically verifies the (date, time) pair is free of
	// live appointments and inserts appt. Returns ErrSlotTaken when a
	// concurrent writer won the slot.
	ReserveSlot(ctx context.Context, appt *models.Appointment) error
	// MoveSlot atomically re-reserves a different slot for an existing
	// appointment, ignoring the appointment's own current reservation,
	// and resets its status to pending. Returns the updated record.
	MoveSlot(ctx context.Context, id string, change SlotChange) (*models.Appointment, error)
}

// Package appointment implements the clinic's scheduling engine:
// availability, booking with atomic slot reservation, the appointment
// lifecycle, and rescheduling. Persistence is behind
// appointmentRepo.AppointmentRepository; the store enforces slot
// uniqueness so concurrent bookings cannot both win.
package appointment

import (
	"context"
	"time"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/models"
)

// Actor identifies who is driving a lifecycle action.
type Actor struct {
	AccountID string
	IsDoctor  bool
}

// Action is a lifecycle action requested through Transition.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCancel Action = "cancel"
)

// BookingRequest carries everything needed to reserve a slot.
type BookingRequest struct {
	PatientID   string `json:"-"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
}

// SchedulingService defines the interface for the appointment engine.
type SchedulingService interface {
	AvailableSlots(ctx context.Context, date string) (*models.DayAvailability, error)
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	Transition(ctx context.Context, appointmentID string, actor Actor, action Action, doctorNotes string) (*models.Appointment, error)
	Reschedule(ctx context.Context, appointmentID string, actor Actor, newDate, newTime, newReason string) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	DaySheet(ctx context.Context, date string) ([]models.Appointment, error)
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Repo appointmentRepo.AppointmentRepository
	// Now is the injected clock for future-dated checks; tests pin it.
	Now func() time.Time
}

func (svc *DefaultSchedulingService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

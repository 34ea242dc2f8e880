package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/models"
	"clinicport/services/schedule"
	"clinicport/utils"
)

const minReasonLength = 10

// validateSlotRequest applies the shared booking preconditions in
// order: reason length, slot legality, future-dated. It returns the
// parsed day and the trimmed reason.
func (svc *DefaultSchedulingService) validateSlotRequest(date, slot, reason string) (time.Time, string, error) {
	trimmed := strings.TrimSpace(reason)
	if len(trimmed) < minReasonLength {
		return time.Time{}, "", &ValidationError{Field: "reason", Message: "reason too short"}
	}

	day, err := schedule.ParseDate(date)
	if err != nil {
		return time.Time{}, "", &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if !schedule.IsValidSlot(day, slot) {
		return time.Time{}, "", &ValidationError{Field: "time", Message: "invalid slot"}
	}

	start, err := schedule.SlotStart(day, slot)
	if err != nil {
		return time.Time{}, "", &ValidationError{Field: "time", Message: "invalid slot"}
	}
	if !start.After(svc.now()) {
		return time.Time{}, "", &ValidationError{Field: "date", Message: "past date/time"}
	}

	return day, trimmed, nil
}

// Book validates the request and atomically reserves the slot. On
// success the appointment is created pending, stamped with the
// approval requirement the date's schedule policy dictates.
func (svc *DefaultSchedulingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	day, reason, err := svc.validateSlotRequest(req.Date, req.Time, req.Reason)
	if err != nil {
		return nil, err
	}

	cfg := schedule.ResolveConfig(day)
	now := svc.now()
	appt := &models.Appointment{
		ID:               uuid.New().String(),
		PatientID:        req.PatientID,
		PatientName:      strings.TrimSpace(req.PatientName),
		Date:             req.Date,
		Time:             req.Time,
		Reason:           reason,
		Status:           models.StatusPending,
		RequiresApproval: cfg.ApprovalRequired,
		IsWeekend:        cfg.IsWeekend,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = withRetry(ctx, "ReserveSlot", func() error {
		return svc.Repo.ReserveSlot(ctx, appt)
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, &ConflictError{Date: req.Date, Time: req.Time}
		}
		return nil, err
	}

	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time),
		zap.Bool("requiresApproval", appt.RequiresApproval))
	return appt, nil
}

// GetByID fetches a single appointment.
func (svc *DefaultSchedulingService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt *models.Appointment
	err := withRetry(ctx, "GetByID", func() error {
		var e error
		appt, e = svc.Repo.GetByID(ctx, id)
		return e
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return appt, nil
}

package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/models"
	"clinicport/services/schedule"
	"clinicport/utils"
)

// Reschedule moves an existing appointment to a new slot. The new slot
// passes the same validation as a fresh booking; the conflict check
// skips the appointment's own reservation so moving within the day
// works. A changed slot is a new scheduling decision, so the record
// always comes back pending, even if the original had been accepted.
func (svc *DefaultSchedulingService) Reschedule(ctx context.Context, appointmentID string, actor Actor, newDate, newTime, newReason string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	day, reason, err := svc.validateSlotRequest(newDate, newTime, newReason)
	if err != nil {
		return nil, err
	}

	current, err := svc.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor && actor.AccountID != current.PatientID {
		return nil, &ValidationError{Field: "actor", Message: "not the appointment owner"}
	}

	cfg := schedule.ResolveConfig(day)
	change := appointmentRepo.SlotChange{
		Date:             newDate,
		Time:             newTime,
		Reason:           reason,
		RequiresApproval: cfg.ApprovalRequired,
		IsWeekend:        cfg.IsWeekend,
	}

	var updated *models.Appointment
	err = withRetry(ctx, "MoveSlot", func() error {
		var e error
		updated, e = svc.Repo.MoveSlot(ctx, appointmentID, change)
		return e
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			return nil, &ConflictError{Date: newDate, Time: newTime}
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return nil, &NotFoundError{ID: appointmentID}
		}
		return nil, err
	}

	logger.Info("appointment rescheduled",
		zap.String("appointmentID", appointmentID),
		zap.String("date", updated.Date),
		zap.String("time", updated.Time),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

var _ SchedulingService = (*DefaultSchedulingService)(nil)

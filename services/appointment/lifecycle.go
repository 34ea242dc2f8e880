package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/models"
	"clinicport/utils"
)

// transitions is the complete status machine. Rejected and cancelled
// are terminal; rescheduling is the only other way a status changes,
// and it is a separate operation, not a transition.
var transitions = map[Action]map[models.Status]models.Status{
	ActionAccept: {
		models.StatusPending: models.StatusAccepted,
	},
	ActionReject: {
		models.StatusPending: models.StatusRejected,
	},
	ActionCancel: {
		models.StatusPending:  models.StatusCancelled,
		models.StatusAccepted: models.StatusCancelled,
	},
}

// Transition applies a lifecycle action to an appointment. Accept and
// reject are doctor actions; cancel is open to the owning account and
// to doctors. Accept is also the confirmation step for weekday
// appointments that never needed approval.
func (svc *DefaultSchedulingService) Transition(ctx context.Context, appointmentID string, actor Actor, action Action, doctorNotes string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	targets, ok := transitions[action]
	if !ok {
		return nil, &ValidationError{Field: "action", Message: "unknown action"}
	}

	appt, err := svc.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := authorizeAction(actor, action, appt); err != nil {
		return nil, err
	}

	next, ok := targets[appt.Status]
	if !ok {
		return nil, &InvalidTransitionError{From: string(appt.Status), Action: string(action)}
	}

	// The conditional write pins the status this decision was made
	// against; losing the race means re-reading and reporting the
	// transition against the status that actually won.
	err = withRetry(ctx, "SetStatus", func() error {
		return svc.Repo.SetStatus(ctx, appointmentID, appt.Status, next, doctorNotes)
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusChanged):
			current, rerr := svc.GetByID(ctx, appointmentID)
			if rerr != nil {
				return nil, rerr
			}
			return nil, &InvalidTransitionError{From: string(current.Status), Action: string(action)}
		case errors.Is(err, appointmentRepo.ErrNotFound):
			return nil, &NotFoundError{ID: appointmentID}
		}
		return nil, err
	}

	appt.Status = next
	appt.UpdatedAt = time.Now()
	if doctorNotes != "" {
		appt.DoctorNotes = doctorNotes
	}
	logger.Info("appointment transitioned",
		zap.String("appointmentID", appointmentID),
		zap.String("action", string(action)),
		zap.String("status", string(next)))
	return appt, nil
}

// authorizeAction enforces who may drive each action: accept/reject
// are doctor-only, cancel also belongs to the owning account.
func authorizeAction(actor Actor, action Action, appt *models.Appointment) error {
	switch action {
	case ActionAccept, ActionReject:
		if !actor.IsDoctor {
			return &ValidationError{Field: "actor", Message: "doctor role required"}
		}
	case ActionCancel:
		if !actor.IsDoctor && actor.AccountID != appt.PatientID {
			return &ValidationError{Field: "actor", Message: "not the appointment owner"}
		}
	}
	return nil
}

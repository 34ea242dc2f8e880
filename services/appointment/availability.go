package appointment

import (
	"context"

	"clinicport/models"
	"clinicport/services/schedule"
)

// AvailableSlots returns the slot grid for a date and the subset not
// held by a pending or accepted appointment. This is an advisory read
// that feeds the picker; the no-double-booking guarantee comes from
// the reservation transaction, not from this view.
func (svc *DefaultSchedulingService) AvailableSlots(ctx context.Context, date string) (*models.DayAvailability, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	all := schedule.GenerateSlots(day)

	var booked []models.Appointment
	err = withRetry(ctx, "ListActiveByDate", func() error {
		var e error
		booked, e = svc.Repo.ListActiveByDate(ctx, date)
		return e
	})
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, appt := range booked {
		taken[appt.Time] = struct{}{}
	}

	free := make([]string, 0, len(all))
	for _, slot := range all {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}

	return &models.DayAvailability{
		Date:      date,
		Config:    schedule.ResolveConfig(day),
		AllSlots:  all,
		FreeSlots: free,
	}, nil
}

// DaySheet returns every appointment on a date regardless of status,
// for the doctor's daily review.
func (svc *DefaultSchedulingService) DaySheet(ctx context.Context, date string) ([]models.Appointment, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	var appts []models.Appointment
	err := withRetry(ctx, "ListByDate", func() error {
		var e error
		appts, e = svc.Repo.ListByDate(ctx, date)
		return e
	})
	return appts, err
}

// ListForPatient returns all appointments owned by an account.
func (svc *DefaultSchedulingService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := withRetry(ctx, "ListByPatient", func() error {
		var e error
		appts, e = svc.Repo.ListByPatient(ctx, patientID)
		return e
	})
	return appts, err
}

package appointment

import (
	"context"
	"errors"
	"testing"

	"clinicport/models"
)

func TestRescheduleAcceptedGoesBackToPending(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00")

	if _, err := svc.Transition(ctx, appt.ID, doctor, ActionAccept, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}

	got, err := svc.Reschedule(ctx, appt.ID, owner, "2025-03-11", "18:30", "Follow-up checkup, new symptoms")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want pending after reschedule", got.Status)
	}
	if got.Date != "2025-03-11" || got.Time != "18:30" {
		t.Errorf("slot = %s %s, want 2025-03-11 18:30", got.Date, got.Time)
	}
}

func TestRescheduleRecomputesApprovalPolicy(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00") // Monday, no approval needed

	got, err := svc.Reschedule(ctx, appt.ID, owner, "2025-03-15", "11:00", "Follow-up checkup")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !got.RequiresApproval || !got.IsWeekend {
		t.Error("move to Saturday did not pick up the weekend approval policy")
	}

	got, err = svc.Reschedule(ctx, appt.ID, owner, "2025-03-17", "18:00", "Follow-up checkup")
	if err != nil {
		t.Fatalf("Reschedule back: %v", err)
	}
	if got.RequiresApproval || got.IsWeekend {
		t.Error("move back to Monday kept the weekend policy")
	}
}

func TestRescheduleRevivesCancelledAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00")

	if _, err := svc.Transition(ctx, appt.ID, owner, ActionCancel, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, err := svc.Reschedule(ctx, appt.ID, owner, "2025-03-11", "19:00", "Follow-up checkup")
	if err != nil {
		t.Fatalf("Reschedule of a cancelled appointment: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want pending after revival", got.Status)
	}

	day, err := svc.AvailableSlots(ctx, "2025-03-11")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if containsSlot(day.FreeSlots, "19:00") {
		t.Error("revived appointment does not hold its new slot")
	}
}

func TestRescheduleRejectedAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:30")

	if _, err := svc.Transition(ctx, appt.ID, doctor, ActionReject, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}

	got, err := svc.Reschedule(ctx, appt.ID, owner, "2025-03-12", "18:00", "Follow-up checkup")
	if err != nil {
		t.Fatalf("Reschedule of a rejected appointment: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
}

func TestRescheduleExcludesOwnReservation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00")

	// Same slot, new reason: must not conflict with itself.
	got, err := svc.Reschedule(ctx, appt.ID, owner, appt.Date, appt.Time, "Follow-up checkup, updated notes")
	if err != nil {
		t.Fatalf("Reschedule onto own slot: %v", err)
	}
	if got.Reason != "Follow-up checkup, updated notes" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestRescheduleConflictsWithOtherBooking(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	appt := bookPending(t, svc, "19:00")
	other := validRequest()
	other.PatientID = "acct-2"
	other.Time = "19:30"
	if _, err := svc.Book(ctx, other); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	_, err := svc.Reschedule(ctx, appt.ID, owner, other.Date, other.Time, "Follow-up checkup")
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want ConflictError", err)
	}
}

func TestRescheduleValidatesLikeBooking(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00")

	for _, tc := range []struct {
		name   string
		date   string
		slot   string
		reason string
	}{
		{"short reason", "2025-03-11", "18:00", "soon"},
		{"invalid slot", "2025-03-11", "12:00", "Follow-up checkup"},
		{"past date", "2025-02-03", "18:00", "Follow-up checkup"},
	} {
		_, err := svc.Reschedule(ctx, appt.ID, owner, tc.date, tc.slot, tc.reason)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
		}
	}
}

func TestRescheduleAuthorization(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()
	appt := bookPending(t, svc, "19:00")

	stranger := Actor{AccountID: "acct-99"}
	if _, err := svc.Reschedule(ctx, appt.ID, stranger, "2025-03-11", "18:00", "Follow-up checkup"); err == nil {
		t.Error("stranger rescheduled someone else's appointment")
	}
	if _, err := svc.Reschedule(ctx, appt.ID, doctor, "2025-03-11", "18:00", "Follow-up checkup"); err != nil {
		t.Errorf("doctor reschedule refused: %v", err)
	}
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo())
	_, err := svc.Reschedule(context.Background(), "no-such-id", owner, "2025-03-11", "18:00", "Follow-up checkup")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

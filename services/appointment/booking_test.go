package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinicport/models"
)

// newTestService pins the clock to a Saturday morning in early March
// 2025 so the test dates later that month are always in the future.
func newTestService(repo *fakeRepo) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Repo: repo,
		Now: func() time.Time {
			return time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
		},
	}
}

func validRequest() BookingRequest {
	return BookingRequest{
		PatientID:   "acct-1",
		PatientName: "Jordan Okafor",
		Date:        "2025-03-10", // a Monday
		Time:        "19:00",
		Reason:      "Follow-up checkup",
	}
}

func TestBookWeekdayAutoConfirmPolicy(t *testing.T) {
	svc := newTestService(newFakeRepo())

	appt, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
	if appt.RequiresApproval {
		t.Error("weekday booking must not require approval")
	}
	if appt.IsWeekend {
		t.Error("Monday flagged as weekend")
	}
	if appt.ID == "" {
		t.Error("appointment id not assigned")
	}
	if appt.CreatedAt.IsZero() || appt.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped")
	}
}

func TestBookWeekendRequiresApproval(t *testing.T) {
	svc := newTestService(newFakeRepo())

	req := validRequest()
	req.Date = "2025-03-15" // a Saturday
	req.Time = "11:00"
	appt, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
	if !appt.RequiresApproval {
		t.Error("weekend booking must require approval")
	}
	if !appt.IsWeekend {
		t.Error("Saturday not flagged as weekend")
	}
}

func TestBookValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
		field  string
	}{
		{"short reason", func(r *BookingRequest) { r.Reason = "checkup" }, "reason"},
		{"whitespace-padded short reason", func(r *BookingRequest) { r.Reason = "   flu    " }, "reason"},
		{"weekend slot on a weekday", func(r *BookingRequest) { r.Time = "11:00" }, "time"},
		{"off-grid minute", func(r *BookingRequest) { r.Time = "19:15" }, "time"},
		{"malformed time", func(r *BookingRequest) { r.Time = "7pm" }, "time"},
		{"malformed date", func(r *BookingRequest) { r.Date = "10-03-2025" }, "date"},
		{"past date", func(r *BookingRequest) { r.Date = "2025-02-24" }, "date"},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := svc.Book(context.Background(), req)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%s: rejected field %q, want %q", tc.name, verr.Field, tc.field)
		}
	}
}

func TestBookSameDayFutureSlotAllowed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	// Clock at 18:10 on the booking day: 18:00 is gone, 18:30 is fine.
	svc.Now = func() time.Time {
		return time.Date(2025, 3, 10, 18, 10, 0, 0, time.Local)
	}

	req := validRequest()
	req.Time = "18:00"
	if _, err := svc.Book(context.Background(), req); err == nil {
		t.Error("slot already underway was accepted")
	}

	req.Time = "18:30"
	if _, err := svc.Book(context.Background(), req); err != nil {
		t.Errorf("future slot on the same day rejected: %v", err)
	}
}

func TestBookConflict(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.Book(context.Background(), validRequest()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	req := validRequest()
	req.PatientID = "acct-2"
	_, err := svc.Book(context.Background(), req)
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("second booking: got %v, want ConflictError", err)
	}
	if cerr.Date != req.Date || cerr.Time != req.Time {
		t.Errorf("ConflictError carries %s %s, want %s %s", cerr.Date, cerr.Time, req.Date, req.Time)
	}
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	svc := newTestService(newFakeRepo())

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, conflicted int
	for err := range results {
		switch {
		case err == nil:
			won++
		default:
			var cerr *ConflictError
			if !errors.As(err, &cerr) {
				t.Errorf("unexpected error kind: %v", err)
				continue
			}
			conflicted++
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if conflicted != attempts-1 {
		t.Errorf("conflicts = %d, want %d", conflicted, attempts-1)
	}
}

func TestBookRetriesTransientFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	repo.failNext(2)
	if _, err := svc.Book(context.Background(), validRequest()); err != nil {
		t.Fatalf("booking should survive two transient failures, got %v", err)
	}
}

func TestBookRetryAfterAmbiguousCommit(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	// The store commits the insert but the caller sees a transient
	// error. The retry must recognize its own reservation instead of
	// treating it as a conflicting booking.
	repo.ambiguousReserves = 1
	appt, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("retried booking failed: %v", err)
	}

	live, err := repo.ListActiveByDate(context.Background(), appt.Date)
	if err != nil {
		t.Fatalf("ListActiveByDate: %v", err)
	}
	if len(live) != 1 {
		t.Fatalf("active appointments = %d, want exactly 1", len(live))
	}
	if live[0].ID != appt.ID {
		t.Errorf("stored id = %s, want %s", live[0].ID, appt.ID)
	}
}

func TestBookSurfacesInfrastructureError(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	repo.failNext(10)
	_, err := svc.Book(context.Background(), validRequest())
	var ierr *InfrastructureError
	if !errors.As(err, &ierr) {
		t.Fatalf("got %v, want InfrastructureError", err)
	}
	if !errors.Is(err, errTransient) {
		t.Error("InfrastructureError does not wrap the underlying cause")
	}
}

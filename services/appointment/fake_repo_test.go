package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/models"
)

// errTransient simulates a store hiccup the retry loop should absorb.
var errTransient = errors.New("connection reset")

// fakeRepo is an in-memory AppointmentRepository. The mutex around the
// check-and-insert in ReserveSlot/MoveSlot plays the role of the
// store's uniqueness constraint, which is what makes the concurrency
// tests meaningful.
type fakeRepo struct {
	mu        sync.Mutex
	appts     map[string]models.Appointment
	transient int // number of upcoming calls that fail with errTransient
	// ambiguousReserves makes that many ReserveSlot calls commit the
	// insert but still report errTransient, like a commit whose ack was
	// lost on the wire.
	ambiguousReserves int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeRepo) failNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transient = n
}

func (f *fakeRepo) tripTransient() bool {
	if f.transient > 0 {
		f.transient--
		return true
	}
	return false
}

func (f *fakeRepo) EnsureIndexes() error { return nil }

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripTransient() {
		return nil, errTransient
	}
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &appt, nil
}

func (f *fakeRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripTransient() {
		return nil, errTransient
	}
	var out []models.Appointment
	for _, appt := range f.appts {
		if appt.Date == date && appt.Status.Active() {
			out = append(out, appt)
		}
	}
	sortByTime(out)
	return out, nil
}

func (f *fakeRepo) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appts {
		if appt.Date == date {
			out = append(out, appt)
		}
	}
	sortByTime(out)
	return out, nil
}

func (f *fakeRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appts {
		if appt.PatientID == patientID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id string, from, to models.Status, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripTransient() {
		return errTransient
	}
	appt, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if appt.Status != from {
		return appointmentRepo.ErrStatusChanged
	}
	appt.Status = to
	if notes != "" {
		appt.DoctorNotes = notes
	}
	appt.UpdatedAt = time.Now()
	f.appts[id] = appt
	return nil
}

func (f *fakeRepo) ReserveSlot(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripTransient() {
		return errTransient
	}
	// A retried reserve whose earlier attempt committed is a success,
	// not a conflict with itself.
	if _, ok := f.appts[appt.ID]; ok {
		return nil
	}
	if f.slotHeldLocked(appt.Date, appt.Time, appt.ID) {
		return appointmentRepo.ErrSlotTaken
	}
	f.appts[appt.ID] = *appt
	if f.ambiguousReserves > 0 {
		f.ambiguousReserves--
		return errTransient
	}
	return nil
}

func (f *fakeRepo) MoveSlot(ctx context.Context, id string, change appointmentRepo.SlotChange) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tripTransient() {
		return nil, errTransient
	}
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	if f.slotHeldLocked(change.Date, change.Time, id) {
		return nil, appointmentRepo.ErrSlotTaken
	}
	appt.Date = change.Date
	appt.Time = change.Time
	appt.Reason = change.Reason
	appt.RequiresApproval = change.RequiresApproval
	appt.IsWeekend = change.IsWeekend
	appt.Status = models.StatusPending
	appt.UpdatedAt = time.Now()
	f.appts[id] = appt
	return &appt, nil
}

func (f *fakeRepo) slotHeldLocked(date, slot, excludeID string) bool {
	for _, appt := range f.appts {
		if appt.ID == excludeID {
			continue
		}
		if appt.Date == date && appt.Time == slot && appt.Status.Active() {
			return true
		}
	}
	return false
}

func sortByTime(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool { return appts[i].Time < appts[j].Time })
}

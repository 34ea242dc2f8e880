package models

import "time"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is defined from s.
// Accepted appointments can still be cancelled, so only rejected and
// cancelled are terminal.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// Active reports whether the appointment holds its slot. Only pending
// and accepted appointments count against availability.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

// Appointment represents a booked clinic visit.
type Appointment struct {
	ID               string    `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	PatientID        string    `bson:"patient_id" json:"patientId"`              // Owning account
	PatientName      string    `bson:"patient_name" json:"patientName"`          // Person being seen (may be a family member)
	Date             string    `bson:"date" json:"date"`                         // Visit date in "YYYY-MM-DD" format
	Time             string    `bson:"time" json:"time"`                         // Slot start in "HH:MM" format, minutes 00 or 30
	Reason           string    `bson:"reason" json:"reason"`                     // Reason for visit, trimmed, min 10 chars
	Status           Status    `bson:"status" json:"status"`                      // pending | accepted | rejected | cancelled
	RequiresApproval bool      `bson:"requires_approval" json:"requiresApproval"` // Derived from the date's schedule policy
	IsWeekend        bool      `bson:"is_weekend" json:"isWeekend"`
	DoctorNotes      string    `bson:"doctor_notes,omitempty" json:"doctorNotes,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

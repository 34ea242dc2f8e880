package models

import "time"

// Account roles. Doctors are the approvers in the scheduling flow.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Account is a portal login. Identity verification beyond
// email/password is handled by the surrounding deployment; the engine
// only needs the id and the role.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

package models

// ScheduleConfig describes the clinic's working window and approval
// policy for a single calendar date. It is derived from the date's
// day of week and never stored.
type ScheduleConfig struct {
	OpenHour         int  `json:"openHour"`  // first bookable hour, inclusive
	CloseHour        int  `json:"closeHour"` // last bookable hour, exclusive
	ApprovalRequired bool `json:"approvalRequired"`
	IsWeekend        bool `json:"isWeekend"`
}

// DayAvailability is the picker payload for one date: the full slot
// grid plus the subset still free.
type DayAvailability struct {
	Date      string         `json:"date"`
	Config    ScheduleConfig `json:"config"`
	AllSlots  []string       `json:"allSlots"`
	FreeSlots []string       `json:"freeSlots"`
}

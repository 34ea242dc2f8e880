// Package schedule holds the clinic's day-of-week policy and the slot
// grid derived from it. Everything here is pure; persistence and
// conflict handling live in the appointment service.
package schedule

import (
	"time"

	"clinicport/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Weekday clinic hours are evening-only; weekend hours run through the
// day but every weekend booking needs an explicit doctor decision.
const (
	weekdayOpenHour  = 18
	weekdayCloseHour = 21
	weekendOpenHour  = 10
	weekendCloseHour = 20
)

// ResolveConfig maps a calendar date to its schedule policy. This is
// the single source of truth for both the bookable window and the
// approval requirement; callers must not re-derive weekday logic.
func ResolveConfig(date time.Time) models.ScheduleConfig {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return models.ScheduleConfig{
			OpenHour:         weekendOpenHour,
			CloseHour:        weekendCloseHour,
			ApprovalRequired: true,
			IsWeekend:        true,
		}
	default:
		return models.ScheduleConfig{
			OpenHour:         weekdayOpenHour,
			CloseHour:        weekdayCloseHour,
			ApprovalRequired: false,
			IsWeekend:        false,
		}
	}
}

// ParseDate parses a "YYYY-MM-DD" date in the clinic's local time.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

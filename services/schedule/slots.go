package schedule

import (
	"fmt"
	"strconv"
	"time"
)

// SlotInterval is the fixed appointment length in minutes.
const SlotInterval = 30

// GenerateSlots returns every candidate slot start for the given date,
// ascending: {H:00, H:30} for each hour in [OpenHour, CloseHour).
// Deterministic for a given date, so two calls always agree.
func GenerateSlots(date time.Time) []string {
	cfg := ResolveConfig(date)
	slots := make([]string, 0, (cfg.CloseHour-cfg.OpenHour)*2)
	for h := cfg.OpenHour; h < cfg.CloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// IsValidSlot reports whether hhmm names a slot the generator would
// produce for the date. This guards against hand-crafted times that
// never came from the picker.
func IsValidSlot(date time.Time, hhmm string) bool {
	hour, minute, ok := parseSlot(hhmm)
	if !ok {
		return false
	}
	if minute != 0 && minute != SlotInterval {
		return false
	}
	cfg := ResolveConfig(date)
	return hour >= cfg.OpenHour && hour < cfg.CloseHour
}

// SlotStart combines a date with a slot time into a wall-clock instant,
// used for the future-dated check.
func SlotStart(date time.Time, hhmm string) (time.Time, error) {
	hour, minute, ok := parseSlot(hhmm)
	if !ok {
		return time.Time{}, fmt.Errorf("malformed slot time %q", hhmm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func parseSlot(hhmm string) (hour, minute int, ok bool) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hhmm[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(hhmm[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// Package worklog contains the domain model for daily internship work
// records: entry types, clock times, validation invariants, and the pure
// hours calculator. This is a pure domain layer with zero external
// dependencies beyond entity identifiers.
package worklog

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// EntryType classifies a work-log entry.
type EntryType string

const (
	// TypeNormal is a regular worked day with clock times.
	TypeNormal EntryType = "NORMAL"
	// TypeHoliday marks a public holiday falling on a scheduled day.
	TypeHoliday EntryType = "HOLIDAY"
	// TypeJustifiedAbsence marks an absence covered by a justification.
	TypeJustifiedAbsence EntryType = "JUSTIFIED_ABSENCE"
)

// IsValid checks if the entry type is one of the known values.
func (t EntryType) IsValid() bool {
	switch t {
	case TypeNormal, TypeHoliday, TypeJustifiedAbsence:
		return true
	}
	return false
}

// String returns the string representation of the entry type.
func (t EntryType) String() string {
	return string(t)
}

// ClockTime is a wall-clock time of day stored as minutes since midnight.
// Its wire form is "HH:MM".
type ClockTime int

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(value string) (ClockTime, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("worklog: invalid clock time %q", value)
	}
	var h, m int
	if _, err := fmt.Sscanf(value, "%2d:%2d", &h, &m); err != nil {
		return 0, fmt.Errorf("worklog: invalid clock time %q", value)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("worklog: clock time %q out of range", value)
	}
	return ClockTime(h*60 + m), nil
}

// MustClockTime parses an "HH:MM" string and panics on failure.
// Intended for literals in tests and seed data.
func MustClockTime(value string) ClockTime {
	ct, err := ParseClockTime(value)
	if err != nil {
		panic(err)
	}
	return ct
}

// String formats the clock time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns the minutes-since-midnight value.
func (c ClockTime) Minutes() int {
	return int(c)
}

// MarshalJSON encodes the clock time as an "HH:MM" JSON string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes an "HH:MM" JSON string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	ct, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = ct
	return nil
}

// Entry is a single day's work record. One entry exists per calendar date.
type Entry struct {
	ID              string     `json:"id"`
	Date            time.Time  `json:"date"`
	Type            EntryType  `json:"type"`
	StartTime       *ClockTime `json:"startTime,omitempty"`
	EndTime         *ClockTime `json:"endTime,omitempty"`
	LunchStart      *ClockTime `json:"lunchStart,omitempty"`
	LunchEnd        *ClockTime `json:"lunchEnd,omitempty"`
	CalculatedHours float64    `json:"calculatedHours"`
	Organization    string     `json:"company"`
	TaskDescription string     `json:"taskDescription"`
	Justification   string     `json:"justification,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewEntry creates an entry for the given date with a fresh identifier.
// CalculatedHours is derived from the time fields, never accepted from
// callers.
func NewEntry(date time.Time, entryType EntryType) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        uuid.NewString(),
		Date:      calendar.Truncate(date),
		Type:      entryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateISO returns the entry's calendar date as an ISO string.
func (e *Entry) DateISO() string {
	return calendar.ISO(e.Date)
}

// IsNormal reports whether the entry is a regular worked day.
func (e *Entry) IsNormal() bool {
	return e.Type == TypeNormal
}

// Validate enforces the entry invariants:
//   - the type must be known;
//   - NORMAL entries require startTime/endTime with endTime > startTime;
//   - lunch fields come in pairs, with lunchEnd > lunchStart and the lunch
//     interval strictly inside the work interval;
//   - non-NORMAL entries carry no time fields;
//   - JUSTIFIED_ABSENCE entries require a justification.
func (e *Entry) Validate() error {
	if !e.Type.IsValid() {
		return shared.ErrInvalidEntryType
	}

	if e.Type != TypeNormal {
		if e.StartTime != nil || e.EndTime != nil || e.LunchStart != nil || e.LunchEnd != nil {
			return shared.NewDomainError("worklog", "Validate", shared.ErrInvalidInput,
				"clock times are only allowed on a normal work day")
		}
		if e.Type == TypeJustifiedAbsence && strings.TrimSpace(e.Justification) == "" {
			return shared.NewDomainError("worklog", "Validate", shared.ErrEmptyValue,
				"a justification is required for a justified absence")
		}
		return nil
	}

	if e.StartTime == nil || e.EndTime == nil {
		return shared.ErrMissingTimes
	}
	if *e.EndTime <= *e.StartTime {
		return shared.ErrInvalidTimeRange
	}

	if (e.LunchStart == nil) != (e.LunchEnd == nil) {
		return shared.NewDomainError("worklog", "Validate", shared.ErrInvalidInput,
			"lunch start and end must both be present or both absent")
	}
	if e.LunchStart != nil {
		if *e.LunchEnd <= *e.LunchStart {
			return shared.ErrLunchOutsideShift
		}
		if *e.LunchStart <= *e.StartTime || *e.LunchEnd >= *e.EndTime {
			return shared.ErrLunchOutsideShift
		}
	}
	return nil
}

// RecalculateHours recomputes CalculatedHours from the time fields. It is
// called before every create, update, and import; a client-supplied hours
// value is never trusted.
func (e *Entry) RecalculateHours() {
	e.CalculatedHours = ComputeHours(e.Type, e.StartTime, e.EndTime, e.LunchStart, e.LunchEnd)
}

// ComputeHours converts a pair of clock times, minus an optional lunch
// break, into a decimal hour count rounded to 2 decimal places and floored
// at zero. Non-NORMAL types and missing times yield 0. Pure function.
func ComputeHours(entryType EntryType, start, end, lunchStart, lunchEnd *ClockTime) float64 {
	if entryType != TypeNormal || start == nil || end == nil {
		return 0
	}
	minutes := end.Minutes() - start.Minutes()
	if lunchStart != nil && lunchEnd != nil {
		minutes -= lunchEnd.Minutes() - lunchStart.Minutes()
	}
	if minutes < 0 {
		return 0
	}
	return Round2(float64(minutes) / 60.0)
}

// Round2 rounds an hour value to 2 decimal places. All hour-valued outputs
// of the engine pass through this.
func Round2(hours float64) float64 {
	return math.Round(hours*100) / 100
}

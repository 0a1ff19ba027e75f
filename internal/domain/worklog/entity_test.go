package worklog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

func clock(value string) *ClockTime {
	ct := MustClockTime(value)
	return &ct
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, ct.Minutes())
	assert.Equal(t, "09:30", ct.String())

	ct, err = ParseClockTime("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, ct.Minutes())

	ct, err = ParseClockTime("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, ct.Minutes())

	for _, bad := range []string{"24:00", "12:60", "9h30", "12", "", "12:3x"} {
		_, err := ParseClockTime(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestClockTime_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MustClockTime("08:05"))
	require.NoError(t, err)
	assert.Equal(t, `"08:05"`, string(data))

	var ct ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"17:45"`), &ct))
	assert.Equal(t, 17*60+45, ct.Minutes())
}

func TestComputeHours(t *testing.T) {
	// 09:00-17:30 with a 13:00-14:00 lunch is 7.5 hours.
	got := ComputeHours(TypeNormal, clock("09:00"), clock("17:30"), clock("13:00"), clock("14:00"))
	assert.Equal(t, 7.5, got)

	// 08:30-17:00 with a 12:30-13:30 lunch is 7 hours.
	got = ComputeHours(TypeNormal, clock("08:30"), clock("17:00"), clock("12:30"), clock("13:30"))
	assert.Equal(t, 7.0, got)

	// No lunch break counts the full span.
	got = ComputeHours(TypeNormal, clock("09:00"), clock("13:00"), nil, nil)
	assert.Equal(t, 4.0, got)

	// Minutes round to 2 decimal places: 50 minutes is 0.83 hours.
	got = ComputeHours(TypeNormal, clock("09:00"), clock("09:50"), nil, nil)
	assert.Equal(t, 0.83, got)
}

func TestComputeHours_ZeroCases(t *testing.T) {
	assert.Zero(t, ComputeHours(TypeHoliday, clock("09:00"), clock("17:00"), nil, nil))
	assert.Zero(t, ComputeHours(TypeJustifiedAbsence, nil, nil, nil, nil))
	assert.Zero(t, ComputeHours(TypeNormal, nil, clock("17:00"), nil, nil))
	assert.Zero(t, ComputeHours(TypeNormal, clock("09:00"), nil, nil, nil))
	// A lunch longer than the shift floors at zero rather than going negative.
	assert.Zero(t, ComputeHours(TypeNormal, clock("09:00"), clock("10:00"), clock("09:01"), clock("11:00")))
}

func TestEntry_Validate_Normal(t *testing.T) {
	e := NewEntry(calendar.Date(2024, 6, 5), TypeNormal)
	e.StartTime = clock("09:00")
	e.EndTime = clock("17:30")
	e.LunchStart = clock("13:00")
	e.LunchEnd = clock("14:00")
	assert.NoError(t, e.Validate())

	e.RecalculateHours()
	assert.Equal(t, 7.5, e.CalculatedHours)
}

func TestEntry_Validate_Rejections(t *testing.T) {
	base := func() *Entry {
		e := NewEntry(calendar.Date(2024, 6, 5), TypeNormal)
		e.StartTime = clock("09:00")
		e.EndTime = clock("17:30")
		return e
	}

	t.Run("unknown type", func(t *testing.T) {
		e := base()
		e.Type = EntryType("VACATION")
		assert.Error(t, e.Validate())
	})

	t.Run("missing times", func(t *testing.T) {
		e := NewEntry(calendar.Date(2024, 6, 5), TypeNormal)
		assert.Error(t, e.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		e := base()
		e.EndTime = clock("08:00")
		assert.Error(t, e.Validate())
	})

	t.Run("end equals start", func(t *testing.T) {
		e := base()
		e.EndTime = clock("09:00")
		assert.Error(t, e.Validate())
	})

	t.Run("half lunch pair", func(t *testing.T) {
		e := base()
		e.LunchStart = clock("13:00")
		assert.Error(t, e.Validate())
	})

	t.Run("lunch outside shift", func(t *testing.T) {
		e := base()
		e.LunchStart = clock("08:00")
		e.LunchEnd = clock("09:30")
		assert.Error(t, e.Validate())
	})

	t.Run("inverted lunch", func(t *testing.T) {
		e := base()
		e.LunchStart = clock("14:00")
		e.LunchEnd = clock("13:00")
		assert.Error(t, e.Validate())
	})

	t.Run("times on holiday entry", func(t *testing.T) {
		e := NewEntry(calendar.Date(2024, 6, 10), TypeHoliday)
		e.StartTime = clock("09:00")
		assert.Error(t, e.Validate())
	})

	t.Run("absence without justification", func(t *testing.T) {
		e := NewEntry(calendar.Date(2024, 6, 5), TypeJustifiedAbsence)
		assert.Error(t, e.Validate())
	})
}

func TestEntry_Validate_NonNormal(t *testing.T) {
	h := NewEntry(calendar.Date(2024, 6, 10), TypeHoliday)
	assert.NoError(t, h.Validate())
	h.RecalculateHours()
	assert.Zero(t, h.CalculatedHours)

	a := NewEntry(calendar.Date(2024, 6, 11), TypeJustifiedAbsence)
	a.Justification = "Consulta médica"
	assert.NoError(t, a.Validate())
}

func TestNewEntry_NormalizesDate(t *testing.T) {
	e := NewEntry(calendar.Date(2024, 6, 5).Add(14*time.Hour), TypeNormal)
	assert.Equal(t, "2024-06-05", e.DateISO())
	assert.NotEmpty(t, e.ID)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.33, Round2(7.3333))
	assert.Equal(t, 7.34, Round2(7.336))
	assert.Equal(t, 0.0, Round2(0))
}

// Package report synthesizes the midterm internship report: a prose
// narrative of the logged tasks grouped into chronological phases, an
// attendance summary, and the PDF rendering of both.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
)

// phase is one chronological third of the task log.
type phase struct {
	label string
	start time.Time
	end   time.Time
	tasks []string
}

// BuildNarrative turns date-ordered work entries into one paragraph per
// non-empty phase. Entries without a task description are skipped. An
// empty log yields the locale's fixed placeholder; the function never
// fails on its input.
func BuildNarrative(entries []*worklog.Entry, loc Locale) []string {
	described := make([]*worklog.Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsNormal() && strings.TrimSpace(e.TaskDescription) != "" {
			described = append(described, e)
		}
	}

	if len(described) == 0 {
		return []string{loc.NarrativeEmpty}
	}

	paragraphs := make([]string, 0, 3)
	for _, ph := range splitPhases(described, loc) {
		if p := renderPhase(ph, loc); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitPhases cuts the ordered entries into three contiguous blocks by
// position. The cut points are ceil(n/3) and ceil(2n/3); the first
// block always holds at least one entry.
func splitPhases(entries []*worklog.Entry, loc Locale) []phase {
	n := len(entries)
	cut1 := (n + 2) / 3
	if cut1 < 1 {
		cut1 = 1
	}
	cut2 := (2*n + 2) / 3
	if cut2 < cut1 {
		cut2 = cut1
	}

	bounds := [3][2]int{{0, cut1}, {cut1, cut2}, {cut2, n}}
	phases := make([]phase, 0, 3)
	for i, b := range bounds {
		if b[0] >= b[1] {
			continue
		}
		block := entries[b[0]:b[1]]
		ph := phase{
			label: loc.PhaseLabels[i],
			start: block[0].Date,
			end:   block[len(block)-1].Date,
		}
		seen := make(map[string]struct{})
		for _, e := range block {
			task := normalizeTask(e.TaskDescription)
			key := strings.ToLower(task)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ph.tasks = append(ph.tasks, task)
		}
		phases = append(phases, ph)
	}
	return phases
}

// normalizeTask trims and collapses whitespace, lowercases the first
// letter so the task reads as a sentence continuation, and guarantees
// terminal punctuation.
func normalizeTask(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	s = string(runes)

	switch s[len(s)-1] {
	case '.', '!', '?':
	default:
		s += "."
	}
	return s
}

// renderPhase joins a phase's tasks into one paragraph, opening each
// sentence with the next connective and reusing the last connective
// once the sequence is exhausted.
func renderPhase(ph phase, loc Locale) string {
	if len(ph.tasks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s%s%s): ",
		ph.label,
		ph.start.Format(loc.DateLayout),
		loc.RangeJoiner,
		ph.end.Format(loc.DateLayout))

	for i, task := range ph.tasks {
		conn := loc.Connectives[len(loc.Connectives)-1]
		if i < len(loc.Connectives) {
			conn = loc.Connectives[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(conn)
		b.WriteString(", ")
		b.WriteString(task)
	}
	return b.String()
}

// BuildAttendance summarizes presence between the first and last logged
// work day as two sentences: the observed-versus-expected count and the
// band classification. The expected-day window counts Monday through
// Friday only, independent of the configured working-day set used for
// predictions. With no entries, or a window containing no weekdays, it
// returns the locale's fixed placeholder.
func BuildAttendance(entries []*worklog.Entry, loc Locale) []string {
	worked := make([]*worklog.Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsNormal() {
			worked = append(worked, e)
		}
	}

	if len(worked) == 0 {
		return []string{loc.AttendanceEmpty}
	}

	first := worked[0].Date
	last := worked[len(worked)-1].Date

	expected := countWeekdays(first, last)
	if expected == 0 {
		return []string{loc.AttendanceEmpty}
	}

	observed := len(worked)
	rate := float64(observed) / float64(expected) * 100

	summary := fmt.Sprintf(loc.AttendanceSummary,
		first.Format(loc.DateLayout),
		last.Format(loc.DateLayout),
		observed, expected, rate)

	band := loc.BandIrregular
	switch {
	case rate >= bandHighThreshold:
		band = loc.BandHigh
	case rate >= bandModerateThreshold:
		band = loc.BandModerate
	}

	return []string{summary, band}
}

// countWeekdays counts Monday..Friday days in [from, to] inclusive.
func countWeekdays(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
	"github.com/estagio-hub/estagio-hours-hub/pkg/pdfwriter"
)

// Page layout constants for the rendered report.
const (
	wrapWidth    = 88
	leftMargin   = 56.0
	topMargin    = 64.0
	bodyFontSize = 11.0
	titleSize    = 16.0
	lineLeading  = 16.0
)

// MidtermGenerator builds the midterm internship report PDF from the
// full work log and the internship settings.
type MidtermGenerator struct {
	workLogRepo  worklog.Repository
	settingsRepo settings.Repository
	locale       Locale
	log          *logger.Logger
}

// NewMidtermGenerator creates a generator using the Portuguese locale.
func NewMidtermGenerator(workLogRepo worklog.Repository, settingsRepo settings.Repository, log *logger.Logger) *MidtermGenerator {
	return &MidtermGenerator{
		workLogRepo:  workLogRepo,
		settingsRepo: settingsRepo,
		locale:       LocalePT,
		log:          log,
	}
}

// Generate produces the report as PDF bytes. An empty work log still
// produces a valid document with the placeholder sentences.
func (g *MidtermGenerator) Generate(ctx context.Context) ([]byte, error) {
	cfg, err := g.settingsRepo.Get(ctx)
	if err != nil {
		return nil, shared.WrapError("report", "GenerateMidterm",
			shared.ErrStoreUnavailable, "load settings", err)
	}

	entries, err := g.workLogRepo.ListNormal(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, shared.WrapError("report", "GenerateMidterm",
			shared.ErrStoreUnavailable, "list work entries", err)
	}

	lines := g.buildLines(cfg, entries)
	pdf, err := renderLines(lines)
	if err != nil {
		return nil, shared.WrapError("report", "GenerateMidterm",
			shared.ErrInvalidFormat, "render document", err)
	}

	g.log.Info("midterm report generated",
		logger.RowCount(len(entries)),
		logger.Int("lines", len(lines)))

	return pdf, nil
}

// buildLines assembles the report as plain text lines, word-wrapped to
// the fixed column width. Empty strings are blank lines.
func (g *MidtermGenerator) buildLines(cfg *settings.Settings, entries []*worklog.Entry) []string {
	loc := g.locale
	now := time.Now().UTC()

	lines := []string{loc.Title, ""}

	meta := []struct{ label, value string }{
		{loc.LabelProgram, cfg.InternshipTitle},
		{loc.LabelStudent, cfg.StudentName},
		{loc.LabelNumber, cfg.StudentNumber},
		{loc.LabelOrganization, cfg.OrganizationName},
		{loc.LabelSupervisor, cfg.SupervisorName},
		{loc.LabelPeriod, periodBounds(cfg, entries, loc)},
	}
	for _, m := range meta {
		if m.value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.label, m.value))
	}

	lines = append(lines, "", loc.HeadingLearning, "")
	for _, p := range BuildNarrative(entries, loc) {
		lines = append(lines, WrapText(p, wrapWidth)...)
		lines = append(lines, "")
	}

	lines = append(lines, loc.HeadingAttendance, "")
	for _, p := range BuildAttendance(entries, loc) {
		lines = append(lines, WrapText(p, wrapWidth)...)
	}

	lines = append(lines, "",
		fmt.Sprintf(loc.GeneratedOn, now.Format(loc.DateLayout)))

	return lines
}

// periodBounds formats the covered period from the log, falling back to
// the configured start date when nothing is logged yet.
func periodBounds(cfg *settings.Settings, entries []*worklog.Entry, loc Locale) string {
	if len(entries) == 0 {
		if cfg.StartDate.IsZero() {
			return ""
		}
		return cfg.StartDate.Format(loc.DateLayout)
	}
	first := entries[0].Date
	last := entries[len(entries)-1].Date
	return first.Format(loc.DateLayout) + loc.RangeJoiner + last.Format(loc.DateLayout)
}

// WrapText greedily wraps s into lines of at most width characters,
// breaking on spaces. Words longer than the width stand alone on their
// own line.
func WrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}

// renderLines lays the text lines onto a single A4 page, top-left
// origin with fixed leading. Overflow past the bottom margin is an
// accepted simplification; the document stays structurally valid.
func renderLines(lines []string) ([]byte, error) {
	doc := pdfwriter.New()
	page := doc.AddPage()

	y := float64(pdfwriter.PageHeightA4) - topMargin
	for i, line := range lines {
		if line != "" {
			size := bodyFontSize
			if i == 0 {
				size = titleSize
			}
			page.Text(leftMargin, y, size, line)
		}
		y -= lineLeading
	}

	return doc.Bytes()
}

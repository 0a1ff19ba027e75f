// Package transfer moves work-log entries across the CSV boundary.
// Export writes the canonical ten-column layout; import parses it back,
// re-deriving each entry's hours from its clock times instead of
// trusting the stored column, and upserts by calendar date.
package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

// csvHeader is the canonical column layout. Order is part of the
// interchange contract.
var csvHeader = []string{
	"date", "type", "startTime", "endTime", "lunchStart", "lunchEnd",
	"calculatedHours", "company", "taskDescription", "justification",
}

// ImportSummary reports the outcome of one CSV import.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// CSVService implements export and import over a work-log repository.
type CSVService struct {
	workLogRepo worklog.Repository
	log         *logger.Logger
}

// NewCSVService creates a new CSVService.
func NewCSVService(workLogRepo worklog.Repository, log *logger.Logger) *CSVService {
	return &CSVService{workLogRepo: workLogRepo, log: log}
}

// Export writes every entry to w in date order. Quoting follows
// RFC 4180: fields containing commas, quotes or newlines are quoted,
// embedded quotes are doubled.
func (s *CSVService) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.workLogRepo.ListAll(ctx)
	if err != nil {
		return shared.WrapError("transfer", "ExportCSV",
			shared.ErrStoreUnavailable, "list entries", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("transfer: write header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.DateISO(),
			string(e.Type),
			clockField(e.StartTime),
			clockField(e.EndTime),
			clockField(e.LunchStart),
			clockField(e.LunchEnd),
			strconv.FormatFloat(e.CalculatedHours, 'f', 2, 64),
			e.Organization,
			e.TaskDescription,
			e.Justification,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("transfer: write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("transfer: flush: %w", err)
	}

	s.log.Info("csv export complete", logger.RowCount(len(entries)))
	return nil
}

// Import reads entries from r and upserts each by date. Malformed rows
// are collected in the summary instead of aborting the whole import;
// only a broken stream fails the call.
func (s *CSVService) Import(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, shared.WrapError("transfer", "ImportCSV",
			shared.ErrInvalidFormat, "read header", err)
	}
	if !headerMatches(header) {
		return nil, shared.NewDomainError("transfer", "ImportCSV",
			shared.ErrInvalidFormat, "unexpected column layout")
	}

	summary := &ImportSummary{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, shared.WrapError("transfer", "ImportCSV",
				shared.ErrInvalidFormat, fmt.Sprintf("line %d", line), err)
		}

		entry, err := parseRecord(record)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		if err := s.workLogRepo.UpsertByDate(ctx, entry); err != nil {
			return nil, shared.WrapError("transfer", "ImportCSV",
				shared.ErrStoreUnavailable, fmt.Sprintf("store line %d", line), err)
		}
		summary.Imported++
	}

	s.log.Info("csv import complete",
		logger.Int("imported", summary.Imported),
		logger.Int("skipped", summary.Skipped))

	return summary, nil
}

// parseRecord builds a validated entry from one CSV row. The hours
// column is ignored; hours are recomputed from the clock times.
func parseRecord(record []string) (*worklog.Entry, error) {
	date, err := calendar.ParseISO(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	entryType := worklog.EntryType(strings.TrimSpace(record[1]))
	if !entryType.IsValid() {
		return nil, fmt.Errorf("unknown entry type %q", record[1])
	}

	entry := worklog.NewEntry(date, entryType)
	if entry.StartTime, err = clockValue(record[2]); err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	if entry.EndTime, err = clockValue(record[3]); err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	if entry.LunchStart, err = clockValue(record[4]); err != nil {
		return nil, fmt.Errorf("lunchStart: %w", err)
	}
	if entry.LunchEnd, err = clockValue(record[5]); err != nil {
		return nil, fmt.Errorf("lunchEnd: %w", err)
	}

	entry.Organization = record[7]
	entry.TaskDescription = record[8]
	entry.Justification = record[9]

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entry.RecalculateHours()
	return entry, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range csvHeader {
		if strings.TrimSpace(header[i]) != col {
			return false
		}
	}
	return true
}

func clockField(ct *worklog.ClockTime) string {
	if ct == nil {
		return ""
	}
	return ct.String()
}

func clockValue(field string) (*worklog.ClockTime, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	ct, err := worklog.ParseClockTime(field)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

package command

import (
	"context"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GENERATE HOLIDAYS COMMAND
// Seeds one year's Portuguese national holidays, fixed and movable.
// The operation is idempotent: rerunning a year upserts by date, so
// regenerated movable holidays never duplicate.
// ══════════════════════════════════════════════════════════════════════════════

// GenerateHolidaysCommand seeds the holidays of one year.
type GenerateHolidaysCommand struct {
	Year int
}

// Validate validates the command.
func (c GenerateHolidaysCommand) Validate() error {
	if c.Year < holiday.MinYear || c.Year > holiday.MaxYear {
		return shared.NewDomainError("command", "GenerateHolidays",
			shared.ErrInvalidYear, "year outside the supported range")
	}
	return nil
}

// GenerateHolidaysHandler handles the GenerateHolidaysCommand.
type GenerateHolidaysHandler struct {
	holidayRepo holiday.Repository
	log         *logger.Logger
}

// NewGenerateHolidaysHandler creates a new GenerateHolidaysHandler.
func NewGenerateHolidaysHandler(holidayRepo holiday.Repository, log *logger.Logger) *GenerateHolidaysHandler {
	return &GenerateHolidaysHandler{holidayRepo: holidayRepo, log: log}
}

// Handle executes the command and returns the stored holidays.
func (h *GenerateHolidaysHandler) Handle(ctx context.Context, cmd GenerateHolidaysCommand) ([]*holiday.Holiday, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	generated := holiday.Generate(cmd.Year)
	stored := make([]*holiday.Holiday, 0, len(generated))

	for _, hol := range generated {
		saved, err := h.holidayRepo.UpsertByDate(ctx, hol)
		if err != nil {
			return nil, shared.WrapError("command", "GenerateHolidays",
				shared.ErrStoreUnavailable, "store holiday "+hol.Name, err)
		}
		stored = append(stored, saved)
	}

	h.log.Info("holiday calendar generated",
		logger.Year(cmd.Year),
		logger.RowCount(len(stored)))

	return stored, nil
}

package command

import (
	"context"
	"strings"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MANAGE HOLIDAYS COMMANDS
// Custom holidays on top of the generated national calendar, for
// municipal holidays and one-off closures the generator cannot know.
// ══════════════════════════════════════════════════════════════════════════════

// AddCustomHolidayCommand records a holiday not covered by generation.
type AddCustomHolidayCommand struct {
	Date time.Time
	Name string
}

// Validate validates the command.
func (c AddCustomHolidayCommand) Validate() error {
	if c.Date.IsZero() {
		return shared.NewDomainError("command", "AddCustomHoliday",
			shared.ErrEmptyValue, "holiday date is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("command", "AddCustomHoliday",
			shared.ErrEmptyValue, "holiday name is required")
	}
	return nil
}

// AddCustomHolidayHandler handles the AddCustomHolidayCommand.
type AddCustomHolidayHandler struct {
	holidayRepo holiday.Repository
}

// NewAddCustomHolidayHandler creates a new AddCustomHolidayHandler.
func NewAddCustomHolidayHandler(holidayRepo holiday.Repository) *AddCustomHolidayHandler {
	return &AddCustomHolidayHandler{holidayRepo: holidayRepo}
}

// Handle executes the command and returns the stored holiday.
func (h *AddCustomHolidayHandler) Handle(ctx context.Context, cmd AddCustomHolidayCommand) (*holiday.Holiday, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hol := holiday.New(cmd.Date, strings.TrimSpace(cmd.Name), false)
	if err := h.holidayRepo.Create(ctx, hol); err != nil {
		return nil, err
	}
	return hol, nil
}

// DeleteHolidayCommand removes a holiday by identifier.
type DeleteHolidayCommand struct {
	ID string
}

// DeleteHolidayHandler handles the DeleteHolidayCommand.
type DeleteHolidayHandler struct {
	holidayRepo holiday.Repository
}

// NewDeleteHolidayHandler creates a new DeleteHolidayHandler.
func NewDeleteHolidayHandler(holidayRepo holiday.Repository) *DeleteHolidayHandler {
	return &DeleteHolidayHandler{holidayRepo: holidayRepo}
}

// Handle executes the command.
func (h *DeleteHolidayHandler) Handle(ctx context.Context, cmd DeleteHolidayCommand) error {
	if cmd.ID == "" {
		return shared.NewDomainError("command", "DeleteHoliday",
			shared.ErrInvalidID, "holiday id is required")
	}
	return h.holidayRepo.Delete(ctx, cmd.ID)
}

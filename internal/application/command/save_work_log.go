// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE WORK LOG COMMANDS
// Create and update of daily work log entries. Both paths validate the
// entry against the clock-time rules and recompute the stored hours
// before anything is persisted, so the stored value can never drift
// from the clock times.
// ══════════════════════════════════════════════════════════════════════════════

// WorkLogInput carries the writable fields of an entry.
type WorkLogInput struct {
	Date            time.Time
	Type            worklog.EntryType
	StartTime       *worklog.ClockTime
	EndTime         *worklog.ClockTime
	LunchStart      *worklog.ClockTime
	LunchEnd        *worklog.ClockTime
	Organization    string
	TaskDescription string
	Justification   string
}

// apply copies the input onto an entry and recomputes its hours.
func (in WorkLogInput) apply(e *worklog.Entry) error {
	e.Date = calendar.Truncate(in.Date)
	e.Type = in.Type
	e.StartTime = in.StartTime
	e.EndTime = in.EndTime
	e.LunchStart = in.LunchStart
	e.LunchEnd = in.LunchEnd
	e.Organization = in.Organization
	e.TaskDescription = in.TaskDescription
	e.Justification = in.Justification

	if err := e.Validate(); err != nil {
		return err
	}
	e.RecalculateHours()
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// CreateWorkLogCommand creates a new entry.
type CreateWorkLogCommand struct {
	Input WorkLogInput
}

// Validate validates the command.
func (c CreateWorkLogCommand) Validate() error {
	if c.Input.Date.IsZero() {
		return shared.NewDomainError("command", "CreateWorkLog",
			shared.ErrEmptyValue, "entry date is required")
	}
	return nil
}

// CreateWorkLogHandler handles the CreateWorkLogCommand.
type CreateWorkLogHandler struct {
	workLogRepo worklog.Repository
}

// NewCreateWorkLogHandler creates a new CreateWorkLogHandler.
func NewCreateWorkLogHandler(workLogRepo worklog.Repository) *CreateWorkLogHandler {
	return &CreateWorkLogHandler{workLogRepo: workLogRepo}
}

// Handle executes the command and returns the stored entry.
func (h *CreateWorkLogHandler) Handle(ctx context.Context, cmd CreateWorkLogCommand) (*worklog.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry := worklog.NewEntry(cmd.Input.Date, cmd.Input.Type)
	if err := cmd.Input.apply(entry); err != nil {
		return nil, shared.WrapError("command", "CreateWorkLog", shared.ErrValidation, "invalid entry", err)
	}

	if err := h.workLogRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateWorkLogCommand replaces the writable fields of an entry.
type UpdateWorkLogCommand struct {
	ID    string
	Input WorkLogInput
}

// Validate validates the command.
func (c UpdateWorkLogCommand) Validate() error {
	if c.ID == "" {
		return shared.NewDomainError("command", "UpdateWorkLog",
			shared.ErrInvalidID, "entry id is required")
	}
	if c.Input.Date.IsZero() {
		return shared.NewDomainError("command", "UpdateWorkLog",
			shared.ErrEmptyValue, "entry date is required")
	}
	return nil
}

// UpdateWorkLogHandler handles the UpdateWorkLogCommand.
type UpdateWorkLogHandler struct {
	workLogRepo worklog.Repository
}

// NewUpdateWorkLogHandler creates a new UpdateWorkLogHandler.
func NewUpdateWorkLogHandler(workLogRepo worklog.Repository) *UpdateWorkLogHandler {
	return &UpdateWorkLogHandler{workLogRepo: workLogRepo}
}

// Handle executes the command and returns the updated entry.
func (h *UpdateWorkLogHandler) Handle(ctx context.Context, cmd UpdateWorkLogCommand) (*worklog.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry, err := h.workLogRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, shared.WrapError("command", "UpdateWorkLog", shared.ErrWorkLogNotFound, "entry not found", err)
	}

	if err := cmd.Input.apply(entry); err != nil {
		return nil, shared.WrapError("command", "UpdateWorkLog", shared.ErrValidation, "invalid entry", err)
	}

	if err := h.workLogRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteWorkLogCommand removes an entry by identifier.
type DeleteWorkLogCommand struct {
	ID string
}

// DeleteWorkLogHandler handles the DeleteWorkLogCommand.
type DeleteWorkLogHandler struct {
	workLogRepo worklog.Repository
}

// NewDeleteWorkLogHandler creates a new DeleteWorkLogHandler.
func NewDeleteWorkLogHandler(workLogRepo worklog.Repository) *DeleteWorkLogHandler {
	return &DeleteWorkLogHandler{workLogRepo: workLogRepo}
}

// Handle executes the command.
func (h *DeleteWorkLogHandler) Handle(ctx context.Context, cmd DeleteWorkLogCommand) error {
	if cmd.ID == "" {
		return shared.NewDomainError("command", "DeleteWorkLog",
			shared.ErrInvalidID, "entry id is required")
	}
	return h.workLogRepo.Delete(ctx, cmd.ID)
}

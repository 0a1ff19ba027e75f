package command

import (
	"context"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE SETTINGS COMMAND
// Partial update of the internship settings singleton. Only the fields
// present in the patch change; the merged result is validated as a
// whole before it is saved.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateSettingsCommand carries the settings patch.
type UpdateSettingsCommand struct {
	Patch settings.Patch
}

// UpdateSettingsHandler handles the UpdateSettingsCommand.
type UpdateSettingsHandler struct {
	settingsRepo settings.Repository
}

// NewUpdateSettingsHandler creates a new UpdateSettingsHandler.
func NewUpdateSettingsHandler(settingsRepo settings.Repository) *UpdateSettingsHandler {
	return &UpdateSettingsHandler{settingsRepo: settingsRepo}
}

// Handle executes the command and returns the merged settings.
func (h *UpdateSettingsHandler) Handle(ctx context.Context, cmd UpdateSettingsCommand) (*settings.Settings, error) {
	current, err := h.settingsRepo.Get(ctx)
	if err != nil {
		return nil, shared.WrapError("command", "UpdateSettings",
			shared.ErrStoreUnavailable, "load settings", err)
	}

	current.Apply(cmd.Patch)
	if err := current.Validate(); err != nil {
		return nil, shared.WrapError("command", "UpdateSettings",
			shared.ErrValidation, "invalid settings", err)
	}

	if err := h.settingsRepo.Save(ctx, current); err != nil {
		return nil, shared.WrapError("command", "UpdateSettings",
			shared.ErrStoreUnavailable, "save settings", err)
	}
	return current, nil
}

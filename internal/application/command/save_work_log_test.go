package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

func clock(value string) *worklog.ClockTime {
	ct := worklog.MustClockTime(value)
	return &ct
}

func normalInput(date string) WorkLogInput {
	d, _ := calendar.ParseISO(date)
	return WorkLogInput{
		Date:            d,
		Type:            worklog.TypeNormal,
		StartTime:       clock("09:00"),
		EndTime:         clock("17:30"),
		LunchStart:      clock("13:00"),
		LunchEnd:        clock("14:00"),
		Organization:    "Acme Lda",
		TaskDescription: "Implementação da API",
	}
}

func TestCreateWorkLog(t *testing.T) {
	repo := newMemWorkLogRepo()
	h := NewCreateWorkLogHandler(repo)

	entry, err := h.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "2024-06-05", entry.DateISO())
	assert.Equal(t, 7.5, entry.CalculatedHours)
	assert.Equal(t, "Acme Lda", entry.Organization)

	stored, err := repo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, stored.ID)
}

func TestCreateWorkLog_HoursAreDerivedNotTrusted(t *testing.T) {
	// The input carries no hours field at all; whatever a client claims
	// on the wire never reaches the store.
	h := NewCreateWorkLogHandler(newMemWorkLogRepo())

	in := normalInput("2024-06-05")
	in.LunchStart = nil
	in.LunchEnd = nil
	entry, err := h.Handle(context.Background(), CreateWorkLogCommand{Input: in})
	require.NoError(t, err)
	assert.Equal(t, 8.5, entry.CalculatedHours)
}

func TestCreateWorkLog_DuplicateDate(t *testing.T) {
	repo := newMemWorkLogRepo()
	h := NewCreateWorkLogHandler(repo)

	_, err := h.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.Error(t, err)
	assert.True(t, shared.IsAlreadyExists(err))
}

func TestCreateWorkLog_InvalidEntry(t *testing.T) {
	h := NewCreateWorkLogHandler(newMemWorkLogRepo())

	in := normalInput("2024-06-05")
	in.EndTime = clock("08:00")
	_, err := h.Handle(context.Background(), CreateWorkLogCommand{Input: in})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestCreateWorkLog_MissingDate(t *testing.T) {
	h := NewCreateWorkLogHandler(newMemWorkLogRepo())

	_, err := h.Handle(context.Background(), CreateWorkLogCommand{Input: WorkLogInput{Type: worklog.TypeNormal}})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestUpdateWorkLog(t *testing.T) {
	repo := newMemWorkLogRepo()
	create := NewCreateWorkLogHandler(repo)
	update := NewUpdateWorkLogHandler(repo)

	entry, err := create.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.NoError(t, err)

	in := normalInput("2024-06-05")
	in.EndTime = clock("18:30")
	in.TaskDescription = "Testes de integração"
	updated, err := update.Handle(context.Background(), UpdateWorkLogCommand{ID: entry.ID, Input: in})
	require.NoError(t, err)

	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, 8.5, updated.CalculatedHours)
	assert.Equal(t, "Testes de integração", updated.TaskDescription)
}

func TestUpdateWorkLog_NotFound(t *testing.T) {
	h := NewUpdateWorkLogHandler(newMemWorkLogRepo())

	_, err := h.Handle(context.Background(), UpdateWorkLogCommand{ID: "missing", Input: normalInput("2024-06-05")})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestUpdateWorkLog_TypeChangeClearsHours(t *testing.T) {
	repo := newMemWorkLogRepo()
	create := NewCreateWorkLogHandler(repo)
	update := NewUpdateWorkLogHandler(repo)

	entry, err := create.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.NoError(t, err)

	d, _ := calendar.ParseISO("2024-06-05")
	updated, err := update.Handle(context.Background(), UpdateWorkLogCommand{
		ID: entry.ID,
		Input: WorkLogInput{
			Date:          d,
			Type:          worklog.TypeJustifiedAbsence,
			Justification: "Consulta médica",
		},
	})
	require.NoError(t, err)
	assert.Zero(t, updated.CalculatedHours)
	assert.Equal(t, worklog.TypeJustifiedAbsence, updated.Type)
}

func TestDeleteWorkLog(t *testing.T) {
	repo := newMemWorkLogRepo()
	create := NewCreateWorkLogHandler(repo)
	del := NewDeleteWorkLogHandler(repo)

	entry, err := create.Handle(context.Background(), CreateWorkLogCommand{Input: normalInput("2024-06-05")})
	require.NoError(t, err)

	require.NoError(t, del.Handle(context.Background(), DeleteWorkLogCommand{ID: entry.ID}))

	_, err = repo.GetByID(context.Background(), entry.ID)
	assert.True(t, shared.IsNotFound(err))
}

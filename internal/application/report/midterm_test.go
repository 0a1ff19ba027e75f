package report

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

// stubWorkLogRepo serves a fixed NORMAL entry list; the generator only
// calls ListNormal.
type stubWorkLogRepo struct {
	worklog.Repository
	entries []*worklog.Entry
}

func (s *stubWorkLogRepo) ListNormal(_ context.Context, _, _ time.Time) ([]*worklog.Entry, error) {
	return s.entries, nil
}

type stubSettingsRepo struct {
	current *settings.Settings
}

func (s *stubSettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	return s.current, nil
}

func (s *stubSettingsRepo) Save(_ context.Context, cfg *settings.Settings) error {
	s.current = cfg
	return nil
}

func testGenerator(entries ...*worklog.Entry) *MidtermGenerator {
	cfg := settings.Default()
	cfg.InternshipTitle = "Estágio Curricular"
	cfg.StudentName = "Maria Santos"
	cfg.OrganizationName = "Acme Lda"

	log := logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
	return NewMidtermGenerator(&stubWorkLogRepo{entries: entries}, &stubSettingsRepo{current: cfg}, log)
}

func TestWrapText(t *testing.T) {
	lines := WrapText("um dois três quatro", 10)
	assert.Equal(t, []string{"um dois", "três", "quatro"}, lines)

	// A word longer than the width stands alone.
	lines = WrapText("supercalifragilistico ok", 10)
	assert.Equal(t, []string{"supercalifragilistico", "ok"}, lines)

	// Short input is a single line.
	assert.Equal(t, []string{"curto"}, WrapText("curto", 88))

	// Blank input wraps to nothing.
	assert.Nil(t, WrapText("   ", 88))
}

func TestGenerate_ProducesValidPDF(t *testing.T) {
	gen := testGenerator(
		describedEntry("2024-06-03", "Configuração do ambiente"),
		describedEntry("2024-06-04", "Implementação da API"),
		describedEntry("2024-06-05", "Testes unitários"),
	)

	pdf, err := gen.Generate(context.Background())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
	assert.Contains(t, string(pdf), "%%EOF")
	// The title and both section headings made it into a content stream.
	assert.Contains(t, string(pdf), "Relat")
	assert.Contains(t, string(pdf), "Assiduidade")
}

func TestGenerate_EmptyLogStillRenders(t *testing.T) {
	gen := testGenerator()

	pdf, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-1.4")))
}

func TestBuildLines_SkipsBlankMetadata(t *testing.T) {
	gen := testGenerator()
	cfg := settings.Default()
	cfg.StudentName = "Maria Santos"

	lines := gen.buildLines(cfg, nil)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "Estudante: Maria Santos")
	// Unset fields leave no dangling labels behind.
	assert.NotContains(t, joined, "Orientador:")
	assert.NotContains(t, joined, "Entidade de acolhimento:")
	// Placeholders stand in for the empty log.
	assert.Contains(t, joined, LocalePT.NarrativeEmpty)
	assert.Contains(t, joined, LocalePT.AttendanceEmpty)
}

func TestBuildLines_PeriodFromEntries(t *testing.T) {
	gen := testGenerator()
	cfg := settings.Default()

	entries := []*worklog.Entry{
		describedEntry("2024-06-03", "A"),
		describedEntry("2024-06-21", "B"),
	}
	lines := gen.buildLines(cfg, entries)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Período: 03/06/2024 a 21/06/2024")
}

package holiday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

func TestEaster_KnownDates(t *testing.T) {
	cases := map[int]string{
		2017: "2017-04-16",
		2020: "2020-04-12",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2038: "2038-04-25", // latest possible Easter
		2285: "2285-03-22", // earliest possible Easter
	}
	for year, want := range cases {
		assert.Equal(t, want, calendar.ISO(Easter(year)), "Easter %d", year)
	}
}

func TestGenerate_2024(t *testing.T) {
	holidays := Generate(2024)
	require.Len(t, holidays, 13)

	byName := make(map[string]*Holiday, len(holidays))
	for _, h := range holidays {
		byName[h.Name] = h
	}

	// Movable dates derived from Easter Sunday 2024-03-31.
	assert.Equal(t, "2024-03-29", byName["Sexta-feira Santa"].DateISO())
	assert.Equal(t, "2024-03-31", byName["Domingo de Páscoa"].DateISO())
	assert.Equal(t, "2024-05-30", byName["Corpo de Deus"].DateISO())
	assert.True(t, byName["Corpo de Deus"].Movable)

	// A sample of the fixed dates.
	assert.Equal(t, "2024-01-01", byName["Ano Novo"].DateISO())
	assert.Equal(t, "2024-04-25", byName["Dia da Liberdade"].DateISO())
	assert.Equal(t, "2024-06-10", byName["Dia de Portugal"].DateISO())
	assert.Equal(t, "2024-12-25", byName["Natal"].DateISO())
	assert.False(t, byName["Natal"].Movable)
}

func TestGenerate_AlwaysThirteenWithinSingleYear(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		holidays := Generate(year)
		require.Len(t, holidays, 13, "year %d", year)
		for _, h := range holidays {
			assert.Equal(t, year, h.Date.Year(), "%s in %d", h.Name, year)
			assert.Equal(t, year, h.Year)
			assert.NotEmpty(t, h.ID)
		}
	}
}

func TestGenerate_DeterministicDates(t *testing.T) {
	a := Generate(2025)
	b := Generate(2025)
	for i := range a {
		assert.Equal(t, a[i].DateISO(), b[i].DateISO())
		assert.Equal(t, a[i].Name, b[i].Name)
	}
}

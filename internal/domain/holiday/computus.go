package holiday

import (
	"time"

	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
)

// Easter calculates the date of Easter Sunday for a given year using the
// anonymous Gregorian computus. Integer arithmetic only; valid for all
// years of the Gregorian calendar.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return calendar.Date(year, month, day)
}

// Generate returns the 13 Portuguese public holidays of a year: the three
// Easter-derived movable dates (Good Friday = Easter - 2 days, Easter
// Sunday, Corpus Christi = Easter + 60 days) and ten fixed dates.
// Deterministic for a given year; callers sort as needed.
func Generate(year int) []*Holiday {
	easter := Easter(year)
	goodFriday := easter.AddDate(0, 0, -2)
	corpusChristi := easter.AddDate(0, 0, 60)

	return []*Holiday{
		New(calendar.Date(year, 1, 1), "Ano Novo", false),
		New(goodFriday, "Sexta-feira Santa", true),
		New(easter, "Domingo de Páscoa", true),
		New(calendar.Date(year, 4, 25), "Dia da Liberdade", false),
		New(calendar.Date(year, 5, 1), "Dia do Trabalhador", false),
		New(corpusChristi, "Corpo de Deus", true),
		New(calendar.Date(year, 6, 10), "Dia de Portugal", false),
		New(calendar.Date(year, 8, 15), "Assunção de Nossa Senhora", false),
		New(calendar.Date(year, 10, 5), "Implantação da República", false),
		New(calendar.Date(year, 11, 1), "Dia de Todos os Santos", false),
		New(calendar.Date(year, 12, 1), "Restauração da Independência", false),
		New(calendar.Date(year, 12, 8), "Imaculada Conceição", false),
		New(calendar.Date(year, 12, 25), "Natal", false),
	}
}

package report

// Locale groups every human-language constant the narrative synthesizer
// emits. The synthesis algorithm never carries inline prose: swapping
// this table retargets the report without touching the phase or
// attendance logic.
type Locale struct {
	// Title is the report heading.
	Title string

	// Metadata field labels, in render order.
	LabelProgram      string
	LabelStudent      string
	LabelNumber       string
	LabelOrganization string
	LabelSupervisor   string
	LabelPeriod       string

	// Section headings.
	HeadingLearning   string
	HeadingAttendance string

	// PhaseLabels name the three chronological thirds of the log.
	PhaseLabels [3]string

	// Connectives open each sentence inside a phase paragraph. Items
	// past the last connective reuse it.
	Connectives [4]string

	// DateLayout formats phase and period bounds.
	DateLayout string

	// RangeJoiner sits between the two dates of a bound.
	RangeJoiner string

	// NarrativeEmpty and AttendanceEmpty are the fixed fallbacks for a
	// log with no usable entries. They are outcomes, not errors.
	NarrativeEmpty  string
	AttendanceEmpty string

	// AttendanceSummary is a format string taking first date, last
	// date, observed days, expected days and the presence percentage.
	AttendanceSummary string

	// Band sentences follow the attendance summary, one per presence
	// band: high, moderate, irregular.
	BandHigh      string
	BandModerate  string
	BandIrregular string

	// GeneratedOn is a format string taking the generation date.
	GeneratedOn string
}

// LocalePT is the European Portuguese table used by the midterm report.
var LocalePT = Locale{
	Title: "Relatório Intercalar de Estágio",

	LabelProgram:      "Programa",
	LabelStudent:      "Estudante",
	LabelNumber:       "Número",
	LabelOrganization: "Entidade de acolhimento",
	LabelSupervisor:   "Orientador",
	LabelPeriod:       "Período",

	HeadingLearning:   "Evolução da Aprendizagem",
	HeadingAttendance: "Assiduidade",

	PhaseLabels: [3]string{
		"Fase inicial",
		"Fase intermédia",
		"Fase recente",
	},

	Connectives: [4]string{
		"Inicialmente",
		"Em seguida",
		"Posteriormente",
		"Por fim",
	},

	DateLayout:  "02/01/2006",
	RangeJoiner: " a ",

	NarrativeEmpty:  "Não existem registos suficientes para descrever a evolução da aprendizagem.",
	AttendanceEmpty: "Não existem registos suficientes para avaliar a assiduidade.",

	AttendanceSummary: "Entre %s e %s, o estagiário esteve presente em %d de %d dias úteis, o que corresponde a uma taxa de presença de %.0f%%.",

	BandHigh:      "A assiduidade registada é elevada, revelando um compromisso consistente com o estágio.",
	BandModerate:  "A assiduidade registada é moderada, com algumas ausências ao longo do período.",
	BandIrregular: "A assiduidade registada é irregular, recomendando-se maior regularidade na presença.",

	GeneratedOn: "Documento gerado em %s.",
}

// Presence-rate thresholds for the attendance bands, in percent.
const (
	bandHighThreshold     = 85.0
	bandModerateThreshold = 65.0
)

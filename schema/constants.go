package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the survey store.
	DatabaseBackend string

	// FormType represents the intralaboral questionnaire variant.
	FormType string

	// ReportFormat represents what the report command produces.
	ReportFormat string

	// RiskLevel represents one of the ordinal risk classifications.
	RiskLevel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	XLSXOut    OutputMode = "xlsx"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Questionnaire variants. Forma A is answered by heads and professionals,
// Forma B by operative staff.
const (
	FormA FormType = "A"
	FormB FormType = "B"
)

// All report formats supported.
const (
	DocxReport   ReportFormat = "docx" // default
	DataReport   ReportFormat = "data"
	ChartsReport ReportFormat = "charts"
)

// Risk levels in ascending order, plus the NoAplica sentinel.
const (
	SinRiesgo     RiskLevel = "Sin riesgo o riesgo despreciable"
	RiesgoBajo    RiskLevel = "Riesgo bajo"
	RiesgoMedio   RiskLevel = "Riesgo medio"
	RiesgoAlto    RiskLevel = "Riesgo alto"
	RiesgoMuyAlto RiskLevel = "Riesgo muy alto"
	NoAplica      RiskLevel = "No aplica"
)

// SinDatos is the frequency bucket for unset or unparseable values.
const SinDatos = "Sin datos"

// RiskLevels lists the five ordinal levels from lowest to highest.
var RiskLevels = []RiskLevel{SinRiesgo, RiesgoBajo, RiesgoMedio, RiesgoAlto, RiesgoMuyAlto}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	XLSXOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidFormTypes lists all valid questionnaire variants.
var ValidFormTypes = map[FormType]struct{}{
	FormA: {},
	FormB: {},
}

// ValidReportFormats lists all valid report formats.
var ValidReportFormats = map[ReportFormat]struct{}{
	DocxReport:   {},
	DataReport:   {},
	ChartsReport: {},
}

// Namespaces of the per-respondent result keys, e.g. "Intra - Claridad de Rol".
const (
	IntraKeyPrefix  = "Intra - "
	ExtraKeyPrefix  = "Extra - "
	EstresKeyPrefix = "Estrés - "
)

package schema

// FrequencyItem is one bucket of a frequency distribution.
type FrequencyItem struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // 0-1
}

// RiskCount is the number and share of respondents at one risk level.
type RiskCount struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"` // 0-1
}

// RiskTableRow holds the level distribution of one factor (dimension or domain).
// The five counts always add up to Total.
type RiskTableRow struct {
	Factor    string    `json:"factor"`
	SinRiesgo RiskCount `json:"sinRiesgo"`
	Bajo      RiskCount `json:"bajo"`
	Medio     RiskCount `json:"medio"`
	Alto      RiskCount `json:"alto"`
	MuyAlto   RiskCount `json:"muyAlto"`
	Total     int       `json:"total"`
}

// HighPct returns the combined share of respondents at alto or muy alto.
func (r RiskTableRow) HighPct() float64 {
	return r.Alto.Pct + r.MuyAlto.Pct
}

// Counts returns the five level counts from lowest to highest.
func (r RiskTableRow) Counts() [5]RiskCount {
	return [5]RiskCount{r.SinRiesgo, r.Bajo, r.Medio, r.Alto, r.MuyAlto}
}

// GeneralRiskRow is a risk row tagged with the kind of factor it describes.
type GeneralRiskRow struct {
	RiskTableRow
	Tipo string `json:"tipo"`
}

// Tipo values used by the general risk table.
const (
	TipoDimension    = "Dimensión"
	TipoDominio      = "Dominio"
	TipoExtralaboral = "Extralaboral"
)

// StressAggregate holds the overall stress distribution and one distribution
// per symptom group. Every slice lists the five levels in ascending order.
type StressAggregate struct {
	Distribution                   []FrequencyItem `json:"distribution"`
	SintomasFisiologicos           []FrequencyItem `json:"sintomasFisiologicos"`
	SintomasComportamentales       []FrequencyItem `json:"sintomasComportamentales"`
	SintomasIntelectualesLaborales []FrequencyItem `json:"sintomasIntelectualesLaborales"`
	SintomasEmocionales            []FrequencyItem `json:"sintomasEmocionales"`
}

// MatrixRow is one row of an intervention matrix.
type MatrixRow struct {
	Factor      string    `json:"factor"`
	NivelRiesgo RiskLevel `json:"nivelRiesgo"`
	Acciones    string    `json:"acciones"`
}

// PVERow is one row of the surveillance-program enrollment table.
type PVERow struct {
	Evaluacion      string `json:"evaluacion"`
	Porcentaje      string `json:"porcentaje"`
	Criterio        string `json:"criterio"`
	RequiereIngreso string `json:"requiereIngreso"`
}

// Demographics holds the population size and one distribution per ficha field.
type Demographics struct {
	TotalParticipants int             `json:"totalParticipants"`
	FormaA            int             `json:"formaA"`
	FormaB            int             `json:"formaB"`
	Sexo              []FrequencyItem `json:"sexo"`
	RangoEdad         []FrequencyItem `json:"rangoEdad"`
	NivelEstudios     []FrequencyItem `json:"nivelEstudios"`
	TipoVivienda      []FrequencyItem `json:"tipoVivienda"`
	EstadoCivil       []FrequencyItem `json:"estadoCivil"`
	Estrato           []FrequencyItem `json:"estrato"`
	PersonasACargo    []FrequencyItem `json:"personasACargo"`
	AniosEmpresa      []FrequencyItem `json:"aniosEmpresa"`
	AniosCargo        []FrequencyItem `json:"aniosCargo"`
	TipoCargo         []FrequencyItem `json:"tipoCargo"`
	TipoContrato      []FrequencyItem `json:"tipoContrato"`
	TipoSalario       []FrequencyItem `json:"tipoSalario"`
	Ocupacion         []FrequencyItem `json:"ocupacion"`
	HorasDiarias      []FrequencyItem `json:"horasDiarias"`
	CiudadResidencia  []FrequencyItem `json:"ciudadResidencia"`
	DeptResidencia    []FrequencyItem `json:"deptResidencia"`
	CiudadTrabajo     []FrequencyItem `json:"ciudadTrabajo"`
	DeptTrabajo       []FrequencyItem `json:"deptTrabajo"`
}

// ReportData is the complete aggregate for one campaign. It is derived on
// every report request and never persisted.
type ReportData struct {
	EmpresaNombre string       `json:"empresaNombre"`
	EmpresaNit    string       `json:"empresaNit"`
	CampanaNombre string       `json:"campanaNombre"`
	FechaInforme  string       `json:"fechaInforme"`
	Demographics  Demographics `json:"demographics"`

	IntralaboralFormaA []RiskTableRow `json:"intralaboralFormaA"`
	IntralaboralFormaB []RiskTableRow `json:"intralaboralFormaB"`
	DominiosFormaA     []RiskTableRow `json:"dominiosFormaA"`
	DominiosFormaB     []RiskTableRow `json:"dominiosFormaB"`
	ExtralaboralFormaA []RiskTableRow `json:"extralaboralFormaA"`
	ExtralaboralFormaB []RiskTableRow `json:"extralaboralFormaB"`

	EstresGeneral StressAggregate `json:"estresGeneral"`
	EstresFormaA  StressAggregate `json:"estresFormaA"`
	EstresFormaB  StressAggregate `json:"estresFormaB"`

	GeneralRisk []GeneralRiskRow `json:"generalRisk"`

	MatrizIntralaboral []MatrixRow `json:"matrizIntralaboral"`
	MatrizExtralaboral []MatrixRow `json:"matrizExtralaboral"`
	PVERows            []PVERow    `json:"pveRows"`

	DimensionesPriorizadasA              []string `json:"dimensionesPriorizadasA"`
	DimensionesPriorizadasB              []string `json:"dimensionesPriorizadasB"`
	DimensionesExtralaboralesPriorizadas []string `json:"dimensionesExtralaboralesPriorizadas"`
}

// RespondentRecord is the slice of a stored response the aggregator needs.
type RespondentRecord struct {
	FormType FormType
	Ficha    Ficha
	Results  SurveyResults
}

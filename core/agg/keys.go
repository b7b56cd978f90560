package agg

import "github.com/huangsam/psicosocial/schema"

// factorKey pairs a display name with the result key it is read from.
type factorKey struct {
	Name string
	Key  string
}

func keysWithPrefix(prefix string, names ...string) []factorKey {
	out := make([]factorKey, len(names))
	for i, n := range names {
		out[i] = factorKey{Name: n, Key: prefix + n}
	}
	return out
}

// intraKeys are the intralaboral dimensions that appear in risk tables. Dimensions
// scored only by Forma A (e.g. Consistencia del Rol) are not reported.
var intraKeys = keysWithPrefix(schema.IntraKeyPrefix,
	"Características del Liderazgo",
	"Relaciones Sociales",
	"Claridad de Rol",
	"Capacitación",
	"Participación y Manejo del Cambio",
	"Control y Autonomía",
	"Condiciones Ambientales",
	"Demandas Emocionales",
	"Demandas Cuantitativas",
	"Demandas de Carga Mental",
	"Demandas de la Jornada",
	"Recompensas (Pertenencia)",
	"Reconocimiento y Compensación",
)

var extraKeys = keysWithPrefix(schema.ExtraKeyPrefix,
	"Tiempo fuera del trabajo",
	"Relaciones Familiares",
	"Situación Económica",
	"Vivienda y Entorno",
)

// Stress result keys.
var (
	keyFisiologicos     = schema.EstresKeyPrefix + "Síntomas Fisiológicos"
	keyPsicoemocionales = schema.EstresKeyPrefix + "Síntomas Psicoemocionales"
	keyComportamiento   = schema.EstresKeyPrefix + "Síntomas Comportamiento Social"
	keyIntelectuales    = schema.EstresKeyPrefix + "Síntomas Intelectuales y Laborales"
)

var estresKeys = []string{keyFisiologicos, keyPsicoemocionales, keyComportamiento, keyIntelectuales}

// domain groups intralaboral dimensions under one name.
type domain struct {
	Name    string
	Members []string
}

var domains = []domain{
	{"Liderazgo y Relaciones Sociales", []string{"Características del Liderazgo", "Relaciones Sociales", "Claridad de Rol"}},
	{"Control sobre el Trabajo", []string{"Capacitación", "Participación y Manejo del Cambio", "Control y Autonomía"}},
	{"Demandas del Trabajo", []string{"Condiciones Ambientales", "Demandas Emocionales", "Demandas Cuantitativas", "Demandas de Carga Mental", "Demandas de la Jornada"}},
	{"Recompensas", []string{"Recompensas (Pertenencia)", "Reconocimiento y Compensación"}},
}

// intraKeyByName resolves a dimension name to its result key.
var intraKeyByName = func() map[string]string {
	m := make(map[string]string, len(intraKeys))
	for _, fk := range intraKeys {
		m[fk.Name] = fk.Key
	}
	return m
}()

// Ficha field keys.
const (
	fichaSexo             = "ficha_2"
	fichaNacimiento       = "ficha_3"
	fichaEstudios         = "ficha_4"
	fichaOcupacion        = "ficha_5"
	fichaEstadoCivil      = "ficha_6"
	fichaEstrato          = "ficha_7"
	fichaVivienda         = "ficha_8"
	fichaPersonasACargo   = "ficha_9"
	fichaAniosEmpresa     = "ficha_11"
	fichaTipoCargo        = "ficha_13"
	fichaAniosCargo       = "ficha_14"
	fichaTipoContrato     = "ficha_16"
	fichaHorasDiarias     = "ficha_17"
	fichaTipoSalario      = "ficha_18"
	fichaCiudadResidencia = "ciudad_residencia"
	fichaDeptResidencia   = "departamento_residencia"
	fichaCiudadTrabajo    = "ciudad_trabajo"
	fichaDeptTrabajo      = "departamento_trabajo"
)

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

const (
	fechaISO   = "2006-01-02"
	fechaLarga = "2 de January de 2006"

	// Defaults applied when the answer does not spell them out.
	defaultPreavisoDias   = 30
	defaultPenalidadMeses = 2

	noEspecificada = "No especificada"
)

var fechaLayouts = []string{
	"2 de January de 2006",
	"2 de January del 2006",
	"2 January 2006",
	"January 2 2006",
}

var fechaLayoutsNumericos = []string{
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"2006-01-02",
}

// parseFechaES parses a Spanish date expression. Month names are matched via
// the es_ES locale tables; day-first numeric forms are tried afterwards.
func parseFechaES(s string) (time.Time, bool) {
	s = normalizarFecha(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range fechaLayouts {
		if t, err := monday.ParseInLocation(layout, s, time.UTC, monday.LocaleEsES); err == nil {
			return t, true
		}
	}
	for _, layout := range fechaLayoutsNumericos {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizarFecha(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "desde ")
	s = strings.TrimPrefix(s, "el ")
	s = strings.ReplaceAll(s, "setiembre", "septiembre")
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

// fechaEnLarga renders a date the way the documents spell it ("30 de
// octubre de 2025"), capitalized like the source documents do.
func fechaEnLarga(t time.Time) string {
	return capitalizar(monday.Format(t, fechaLarga, monday.LocaleEsES))
}

// RangoFechaField is an explicit date range.
type RangoFechaField struct {
	FechaInicio      string `json:"fecha_inicio"`
	FechaFin         string `json:"fecha_fin"`
	FechaInicioLarga string `json:"fecha_inicio_larga"`
	FechaFinLarga    string `json:"fecha_fin_larga"`
}

var rangoSepRe = regexp.MustCompile(`(?i)\s+(hasta|al)\s+`)

// RangoFecha parses "Desde el X hasta el Y". When the end date omits the
// year it inherits the start date's. Unparseable ends stay empty.
func RangoFecha(text string) any {
	var out RangoFechaField
	parts := rangoSepRe.Split(text, 2)
	inicio, ok := parseFechaES(parts[0])
	if ok {
		out.FechaInicio = inicio.Format(fechaISO)
		out.FechaInicioLarga = fechaEnLarga(inicio)
	}
	if len(parts) < 2 {
		return out
	}
	fin, finOK := parseFechaES(parts[1])
	if !finOK && ok {
		// retry with the start date's year appended
		fin, finOK = parseFechaES(parts[1] + " de " + strconv.Itoa(inicio.Year()))
	}
	if finOK && ok && fin.Before(inicio) {
		fin = time.Date(inicio.Year(), fin.Month(), fin.Day(), 0, 0, 0, 0, time.UTC)
	}
	if finOK {
		out.FechaFin = fin.Format(fechaISO)
		out.FechaFinLarga = fechaEnLarga(fin)
	}
	return out
}

// PlazoField is the structured contract term: either two explicit dates or
// a start date plus a duration, with the notice/penalty defaults attached.
type PlazoField struct {
	FechaInicio          string `json:"fecha_inicio"`
	FechaFin             string `json:"fecha_fin"`
	AniosNumeros         int    `json:"anios_numeros"`
	AniosLetras          string `json:"anios_letras"`
	MesesNumeros         int    `json:"meses_numeros"`
	MesesLetras          string `json:"meses_letras"`
	PreavisoDiasNumeros  int    `json:"preaviso_dias_numeros"`
	PreavisoDiasLetras   string `json:"preaviso_dias_letras"`
	PenalidadMesesLetras string `json:"penalidad_meses_letras"`
}

var (
	plazoRangoRe = regexp.MustCompile(`(?i)del\s+(.*?)\s+al\s+(.*)`)
	plazoDesdeRe = regexp.MustCompile(`(?i)desde\s+el\s+(.*?)\s+por\s+(\d+)\s*(mes(?:es)?|años?|anos?)`)
)

// Plazo parses the two supported phrasings: "Del A al B" and "Desde el A por
// N meses/años". Months add N×30 days; years advance the calendar year.
// Unparseable input reports both ends as "No especificada" with zero counts.
func Plazo(text string) any {
	out := PlazoField{
		FechaInicio:          noEspecificada,
		FechaFin:             noEspecificada,
		AniosLetras:          capitalizar(Cardinal(0)),
		MesesLetras:          capitalizar(Cardinal(0)),
		PreavisoDiasNumeros:  defaultPreavisoDias,
		PreavisoDiasLetras:   capitalizar(Cardinal(defaultPreavisoDias)),
		PenalidadMesesLetras: capitalizar(Cardinal(defaultPenalidadMeses)),
	}

	if m := plazoRangoRe.FindStringSubmatch(text); m != nil {
		if inicio, ok := parseFechaES(m[1]); ok {
			out.FechaInicio = inicio.Format(fechaISO)
		} else {
			out.FechaInicio = strings.TrimSpace(m[1])
		}
		if fin, ok := parseFechaES(m[2]); ok {
			out.FechaFin = fin.Format(fechaISO)
		} else {
			out.FechaFin = strings.TrimSpace(m[2])
		}
		return out
	}

	m := plazoDesdeRe.FindStringSubmatch(text)
	if m == nil {
		return out
	}
	cantidad, _ := strconv.Atoi(m[2])
	esAnios := strings.HasPrefix(strings.ToLower(m[3]), "a")
	if esAnios {
		out.AniosNumeros = cantidad
		out.AniosLetras = capitalizar(Cardinal(int64(cantidad)))
	} else {
		out.MesesNumeros = cantidad
		out.MesesLetras = capitalizar(Cardinal(int64(cantidad)))
	}

	inicio, ok := parseFechaES(m[1])
	if !ok {
		out.FechaInicio = strings.TrimSpace(m[1])
		return out
	}
	out.FechaInicio = inicio.Format(fechaISO)
	var fin time.Time
	if esAnios {
		fin = inicio.AddDate(cantidad, 0, 0)
	} else {
		fin = inicio.AddDate(0, 0, cantidad*30)
	}
	out.FechaFin = fin.Format(fechaISO)
	return out
}

// LugarFechaField splits "Lima, 15 de marzo de 2025" into place and date.
type LugarFechaField struct {
	Lugar      string `json:"lugar"`
	Fecha      string `json:"fecha"`
	FechaLarga string `json:"fecha_larga"`
}

var fechaEmbebidaRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}\s+de\s+[a-záéíóúñ]+(?:\s+de(?:l)?\s+\d{4})?`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
}

var conectorRe = regexp.MustCompile(`(?i)^(en|el|para|del)\s+`)

// LugarFecha searches for any embeddable date expression; the residual text
// minus leading connectors and trailing punctuation is the place.
func LugarFecha(text string) any {
	out := LugarFechaField{Lugar: strings.TrimSpace(text)}
	for _, re := range fechaEmbebidaRes {
		span := re.FindString(text)
		if span == "" {
			continue
		}
		fecha, ok := parseFechaES(span)
		if !ok {
			continue
		}
		out.Fecha = fecha.Format(fechaISO)
		out.FechaLarga = fechaEnLarga(fecha)
		lugar := strings.Replace(text, span, "", 1)
		lugar = strings.TrimSpace(lugar)
		for conectorRe.MatchString(lugar) {
			lugar = conectorRe.ReplaceAllString(lugar, "")
		}
		lugar = strings.TrimSpace(trailPunctRe.ReplaceAllString(lugar, ""))
		lugar = strings.TrimSuffix(lugar, " el")
		out.Lugar = strings.TrimSpace(lugar)
		return out
	}
	return out
}

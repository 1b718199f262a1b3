package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/notarialabs/intake/internal/intent"
)

// TextoSimple passes the answer through trimmed, original casing intact.
func TextoSimple(text string) any {
	return strings.TrimSpace(text)
}

// DireccionDescripcionField wraps a free-text address description.
type DireccionDescripcionField struct {
	DireccionCompleta string `json:"direccion_completa"`
}

func DireccionDescripcion(text string) any {
	return DireccionDescripcionField{DireccionCompleta: strings.TrimSpace(text)}
}

// ObjetoDescripcionField wraps the description of the contract's object.
type ObjetoDescripcionField struct {
	Descripcion string `json:"descripcion"`
}

func ObjetoDescripcion(text string) any {
	return ObjetoDescripcionField{Descripcion: strings.TrimSpace(text)}
}

// InteresField records whether interest accrues and at what rate.
type InteresField struct {
	GeneraInteres bool    `json:"genera_interes"`
	Porcentaje    float64 `json:"porcentaje"`
}

var porcentajeRe = regexp.MustCompile(`(\d+[\d\.]*)`)

// Interes flags interest off only on a negative answer ("no", "no genera");
// anything else means interest applies. A standalone number, if present, is
// the percentage.
func Interes(text string) any {
	out := InteresField{GeneraInteres: true}
	lower := strings.ToLower(text)
	if intent.IsNegative(text) || strings.Contains(lower, "no genera") {
		out.GeneraInteres = false
	}
	if m := porcentajeRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			out.Porcentaje = v
		}
	}
	return out
}

// BooleanoField is a yes/no answer.
type BooleanoField struct {
	Valor bool `json:"valor"`
}

// Booleano is false only for a negative answer; everything else is true.
func Booleano(text string) any {
	return BooleanoField{Valor: !intent.IsNegative(text)}
}

package extract

import (
	"strings"
)

// Spanish cardinal spelling, used for the "<monto en letras> y 00/100
// <moneda>" renderings. Covers 0 through 999 999 999, which is far beyond
// any plausible contract amount.

var unidades = []string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho",
	"nueve", "diez", "once", "doce", "trece", "catorce", "quince",
	"dieciséis", "diecisiete", "dieciocho", "diecinueve", "veinte",
	"veintiuno", "veintidós", "veintitrés", "veinticuatro", "veinticinco",
	"veintiséis", "veintisiete", "veintiocho", "veintinueve",
}

var decenas = []string{
	"", "", "", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta",
	"ochenta", "noventa",
}

var centenas = []string{
	"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos",
}

// Cardinal spells a non-negative integer in Spanish. Negative input is
// spelled as its absolute value; fractions are the caller's concern.
func Cardinal(n int64) string {
	if n < 0 {
		n = -n
	}
	if n < 30 {
		return unidades[n]
	}
	if n < 100 {
		d, u := n/10, n%10
		if u == 0 {
			return decenas[d]
		}
		return decenas[d] + " y " + unidades[u]
	}
	if n == 100 {
		return "cien"
	}
	if n < 1000 {
		c, resto := n/100, n%100
		if resto == 0 {
			return centenas[c]
		}
		return centenas[c] + " " + Cardinal(resto)
	}
	if n < 1_000_000 {
		miles, resto := n/1000, n%1000
		var head string
		if miles == 1 {
			head = "mil"
		} else {
			head = apocope(Cardinal(miles)) + " mil"
		}
		if resto == 0 {
			return head
		}
		return head + " " + Cardinal(resto)
	}
	millones, resto := n/1_000_000, n%1_000_000
	var head string
	if millones == 1 {
		head = "un millón"
	} else {
		head = apocope(Cardinal(millones)) + " millones"
	}
	if resto == 0 {
		return head
	}
	return head + " " + Cardinal(resto)
}

// apocope rewrites trailing "uno" to "un" for compound forms ("veintiún
// mil", "treinta y un millones").
func apocope(s string) string {
	if s == "uno" {
		return "un"
	}
	if strings.HasSuffix(s, " uno") {
		return strings.TrimSuffix(s, " uno") + " un"
	}
	if strings.HasSuffix(s, "veintiuno") {
		return strings.TrimSuffix(s, "veintiuno") + "veintiún"
	}
	return s
}

// capitalizar uppercases only the first rune, the way amounts are written in
// the rendered documents ("Ochocientos y 00/100 dólares").
func capitalizar(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// montoEnLetras renders a numeric amount in the contract's formal wording.
func montoEnLetras(monto float64, moneda string) string {
	return capitalizar(Cardinal(int64(monto))) + " y 00/100 " + moneda
}

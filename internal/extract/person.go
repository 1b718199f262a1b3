package extract

import (
	"regexp"
	"strings"
)

var (
	dniRe        = regexp.MustCompile(`\b(\d{8})\b`)
	rucRe        = regexp.MustCompile(`\b(\d{11})\b`)
	trailPunctRe = regexp.MustCompile(`[\.,;]+$`)
)

// PersonaDNIField pairs a full name with an 8-digit national ID.
type PersonaDNIField struct {
	NombreCompleto string `json:"nombre_completo"`
	DNI            string `json:"dni"`
}

// PersonaDNI extracts name and DNI from text such as "Juan Pérez 12345678".
// Without a DNI pattern the whole text is the name and the DNI stays empty.
func PersonaDNI(text string) any {
	out := PersonaDNIField{NombreCompleto: strings.TrimSpace(text)}
	m := dniRe.FindStringSubmatch(text)
	if m == nil {
		return out
	}
	out.DNI = m[1]
	nombre := strings.Replace(text, out.DNI, "", 1)
	out.NombreCompleto = cleanName(nombre)
	return out
}

// PersonaEmpresaField identifies a person or company by DNI or RUC.
type PersonaEmpresaField struct {
	NombreRazonSocial string `json:"nombre_razon_social"`
	DocumentoTipo     string `json:"documento_tipo"`
	DocumentoNumero   string `json:"documento_numero"`
}

// PersonaEmpresa prefers an 11-digit RUC over an 8-digit DNI when both
// appear; with neither, only the name field is populated.
func PersonaEmpresa(text string) any {
	out := PersonaEmpresaField{NombreRazonSocial: strings.TrimSpace(text)}
	if m := rucRe.FindStringSubmatch(text); m != nil {
		out.DocumentoTipo = "RUC"
		out.DocumentoNumero = m[1]
	} else if m := dniRe.FindStringSubmatch(text); m != nil {
		out.DocumentoTipo = "DNI"
		out.DocumentoNumero = m[1]
	}
	if out.DocumentoNumero != "" {
		out.NombreRazonSocial = cleanName(strings.Replace(text, out.DocumentoNumero, "", 1))
	}
	return out
}

// PersonaDireccionField adds the address that follows the DNI in answers
// like "Manuel Leigh 76854553 Calle Leoncio Prado 162".
type PersonaDireccionField struct {
	Nombre    string `json:"nombre"`
	DNI       string `json:"dni"`
	Direccion string `json:"direccion"`

	// Tratamiento is the fixed party treatment ("EL ARRENDADOR"); set at
	// materialization, not by the extractor.
	Tratamiento string `json:"tratamiento,omitempty"`
}

var personaDomicilioRe = regexp.MustCompile(`(?i)^(.+?),?\s*DNI\s*(\d{8})\b.*?domicilio\s*(?:en\s+)?(.+)$`)

// PersonaConDireccion handles both the dictated form ("Manuel Leigh, DNI
// 76854553, domicilio en Calle X") and the bare form where the address just
// follows the DNI. Everything before the DNI is the name, everything after
// is the address.
func PersonaConDireccion(text string) any {
	text = strings.TrimSpace(text)
	out := PersonaDireccionField{Nombre: text}
	if m := personaDomicilioRe.FindStringSubmatch(text); m != nil {
		out.Nombre = cleanName(m[1])
		out.DNI = m[2]
		out.Direccion = cleanName(m[3])
		return out
	}
	m := dniRe.FindStringSubmatch(text)
	if m == nil {
		return out
	}
	out.DNI = m[1]
	before, after, _ := strings.Cut(text, out.DNI)
	out.Nombre = cleanName(before)
	out.Direccion = strings.TrimSpace(trailPunctRe.ReplaceAllString(after, ""))
	return out
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = trailPunctRe.ReplaceAllString(s, "")
	s = strings.TrimSuffix(strings.TrimSpace(s), ",")
	return strings.TrimSpace(s)
}

package extract

import (
	"context"
	"regexp"
	"strings"
)

// InmuebleField is the structured property address. When geocoding fails it
// is filled by splitting the answer on commas, so every field is best-effort.
type InmuebleField struct {
	Direccion     string `json:"direccion"`
	Distrito      string `json:"distrito"`
	Provincia     string `json:"provincia"`
	Departamento  string `json:"departamento"`
	Pais          string `json:"pais,omitempty"`
	TextoBusqueda string `json:"texto_busqueda,omitempty"`
}

// inmueble resolves the address through the geocoder when one is configured,
// bounded by the registry's timeout. Any failure degrades to the local
// comma-split fallback; the turn never sees an error.
func (r *Registry) inmueble(ctx context.Context, text string) any {
	original := strings.TrimSpace(text)
	if r.geocoder == nil {
		return FallbackInmueble(original)
	}
	busqueda := LimpiarDireccion(original)

	lookupCtx, cancel := context.WithTimeout(ctx, r.geoTimeout)
	defer cancel()

	addr, err := r.geocoder.Lookup(lookupCtx, busqueda)
	if err != nil {
		return FallbackInmueble(original)
	}
	pais := addr.Pais
	if pais == "" {
		pais = "Perú"
	}
	return InmuebleField{
		Direccion:     busqueda,
		Distrito:      addr.Distrito,
		Provincia:     addr.Provincia,
		Departamento:  addr.Departamento,
		Pais:          pais,
		TextoBusqueda: busqueda,
	}
}

// FallbackInmueble splits the address on commas: dirección, distrito,
// provincia, departamento, in that order, taking as many parts as exist.
func FallbackInmueble(text string) InmuebleField {
	var parts []string
	for _, p := range strings.Split(text, ",") {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "en ")
		p = strings.TrimPrefix(p, "En ")
		if p != "" {
			parts = append(parts, p)
		}
	}
	var out InmuebleField
	fields := []*string{&out.Direccion, &out.Distrito, &out.Provincia, &out.Departamento}
	for i, p := range parts {
		if i >= len(fields) {
			break
		}
		*fields[i] = p
	}
	return out
}

var (
	enWordRe = regexp.MustCompile(`\b[Ee]n\b`)
	spacesRe = regexp.MustCompile(`\s+`)
	properRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+$`)
)

// LimpiarDireccion shortens a dictated address into a geocoder-friendly
// query: connectors and commas out, duplicated words collapsed, and the
// trailing region words trimmed when the text ends in a run of them.
func LimpiarDireccion(text string) string {
	if text == "" {
		return ""
	}
	s := enWordRe.ReplaceAllString(text, "")
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))

	var unique []string
	seen := make(map[string]bool)
	for _, w := range strings.Split(s, " ") {
		if !seen[strings.ToLower(w)] {
			unique = append(unique, w)
			seen[strings.ToLower(w)] = true
		}
	}
	s = strings.Join(unique, " ")

	parts := strings.Split(s, " ")
	if len(parts) >= 4 {
		trailing := parts[len(parts)-3:]
		all := true
		for _, p := range trailing {
			if !properRe.MatchString(p) {
				all = false
				break
			}
		}
		if all {
			s = strings.Join(parts[:len(parts)-2], " ")
		}
	}
	return strings.TrimSpace(s)
}

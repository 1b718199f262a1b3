// Package extract turns raw free-text answers into typed field values, one
// strategy per field-type tag. Extractors are deterministic and never let a
// failure escape: worst case they return a partial value built from
// documented defaults.
package extract

import (
	"context"
	"fmt"
	"time"
)

// Func is a single field extractor. Most are pure; the address extractor
// uses ctx to bound its geocoding lookup.
type Func func(ctx context.Context, text string) any

// ErrorField marks a field whose extractor failed internally. It takes the
// field's place in the materialized context instead of aborting the run.
type ErrorField struct {
	Error string `json:"error"`
}

// Geocoder resolves a free-text address into a structured breakdown. Any
// error from it is recovered locally, never surfaced to the turn.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (GeoAddress, error)
}

// GeoAddress is the structured response of a place lookup.
type GeoAddress struct {
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
	Pais         string `json:"pais"`
}

// Registry maps field-type tags to extractors.
type Registry struct {
	geocoder   Geocoder
	geoTimeout time.Duration
	funcs      map[string]Func
}

// NewRegistry builds the canonical registry. geocoder may be nil, in which
// case address extraction always uses the local fallback.
func NewRegistry(geocoder Geocoder) *Registry {
	r := &Registry{
		geocoder:   geocoder,
		geoTimeout: 8 * time.Second,
		funcs:      make(map[string]Func),
	}

	pure := map[string]func(string) any{
		"persona_dni":           PersonaDNI,
		"persona_empresa":       PersonaEmpresa,
		"arrendador":            PersonaConDireccion,
		"arrendatario":          PersonaConDireccion,
		"direccion_descripcion": DireccionDescripcion,
		"objeto_descripcion":    ObjetoDescripcion,
		"texto_simple":          TextoSimple,
		"rango_fecha":           RangoFecha,
		"plazo":                 Plazo,
		"lugar_fecha":           LugarFecha,
		"monto_simple":          MontoSimple,
		"monto_condiciones":     MontoCondiciones,
		"monto_renta_garantia":  MontoRentaGarantia,
		"renta":                 Renta,
		"pago":                  Pago,
		"interes":               Interes,
		"booleano":              Booleano,
		// aliases kept from the catalog's oldest entries
		"mutuo":                MontoSimple,
		"reconocimiento_deuda": MontoSimple,
	}
	for tag, f := range pure {
		f := f
		r.funcs[tag] = func(_ context.Context, text string) any { return f(text) }
	}
	r.funcs["inmueble"] = r.inmueble
	return r
}

// Has reports whether a tag resolves to a registered extractor.
func (r *Registry) Has(tag string) bool {
	_, ok := r.funcs[tag]
	return ok
}

// Apply runs the extractor for tag over text. Unregistered tags pass the raw
// text through unchanged. A panicking extractor is contained and reported as
// an ErrorField value.
func (r *Registry) Apply(ctx context.Context, tag, text string) (value any) {
	f, ok := r.funcs[tag]
	if !ok {
		return text
	}
	defer func() {
		if rec := recover(); rec != nil {
			value = ErrorField{Error: fmt.Sprintf("extractor %s: %v", tag, rec)}
		}
	}()
	return f(ctx, text)
}

package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Has(t *testing.T) {
	r := NewRegistry(nil)
	for _, tag := range []string{
		"persona_dni", "persona_empresa", "arrendador", "arrendatario",
		"inmueble", "plazo", "renta", "pago", "lugar_fecha", "texto_simple",
		"booleano", "interes", "monto_simple", "monto_condiciones",
		"monto_renta_garantia", "rango_fecha", "mutuo", "reconocimiento_deuda",
	} {
		assert.True(t, r.Has(tag), "tag: %s", tag)
	}
	assert.False(t, r.Has("desconocido"))
}

func TestRegistry_ApplyUnknownTagPassesThrough(t *testing.T) {
	r := NewRegistry(nil)
	v := r.Apply(context.Background(), "tag_inexistente", "texto crudo")
	assert.Equal(t, "texto crudo", v)
}

func TestRegistry_ApplyRecoversPanic(t *testing.T) {
	r := NewRegistry(nil)
	r.funcs["explota"] = func(context.Context, string) any { panic("boom") }

	v := r.Apply(context.Background(), "explota", "lo que sea")
	ef, ok := v.(ErrorField)
	require.True(t, ok)
	assert.Contains(t, ef.Error, "explota")
	assert.Contains(t, ef.Error, "boom")
}

func TestRegistry_SameInputSameOutput(t *testing.T) {
	r := NewRegistry(nil)
	ctx := context.Background()
	a := r.Apply(ctx, "plazo", "Desde el 1 de enero de 2025 por 6 meses")
	b := r.Apply(ctx, "plazo", "Desde el 1 de enero de 2025 por 6 meses")
	assert.Equal(t, a, b)
}

func TestTextoSimple(t *testing.T) {
	assert.Equal(t, "Local Comercial", TextoSimple("  Local Comercial  "))
}

func TestDireccionDescripcion(t *testing.T) {
	v := DireccionDescripcion(" Av. Brasil 500 ").(DireccionDescripcionField)
	assert.Equal(t, "Av. Brasil 500", v.DireccionCompleta)
}

func TestObjetoDescripcion(t *testing.T) {
	v := ObjetoDescripcion("Una camioneta Toyota Hilux 2020").(ObjetoDescripcionField)
	assert.Equal(t, "Una camioneta Toyota Hilux 2020", v.Descripcion)
}

func TestInteres(t *testing.T) {
	v := Interes("sí, 5% mensual").(InteresField)
	assert.True(t, v.GeneraInteres)
	assert.Equal(t, 5.0, v.Porcentaje)

	v = Interes("no genera intereses").(InteresField)
	assert.False(t, v.GeneraInteres)

	v = Interes("no").(InteresField)
	assert.False(t, v.GeneraInteres)
	assert.Equal(t, 0.0, v.Porcentaje)
}

func TestBooleano(t *testing.T) {
	assert.True(t, Booleano("sí").(BooleanoField).Valor)
	assert.True(t, Booleano("claro que se permite").(BooleanoField).Valor)
	assert.False(t, Booleano("no").(BooleanoField).Valor)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFechaES(t *testing.T) {
	cases := map[string]string{
		"1 de enero de 2025":          "2025-01-01",
		"desde el 1 de enero de 2025": "2025-01-01",
		"30 de Octubre de 2025":       "2025-10-30",
		"15 de setiembre de 2024":     "2024-09-15",
		"15/03/2025":                  "2025-03-15",
		"2025-03-15":                  "2025-03-15",
	}
	for in, want := range cases {
		got, ok := parseFechaES(in)
		require.True(t, ok, "input: %s", in)
		assert.Equal(t, want, got.Format(fechaISO), "input: %s", in)
	}
}

func TestParseFechaES_Invalid(t *testing.T) {
	for _, in := range []string{"", "mañana", "el 45 de enero de 2025"} {
		_, ok := parseFechaES(in)
		assert.False(t, ok, "input: %s", in)
	}
}

func TestFechaEnLarga(t *testing.T) {
	fecha, ok := parseFechaES("30 de octubre de 2025")
	require.True(t, ok)
	assert.Equal(t, "30 de octubre de 2025", fechaEnLarga(fecha))
}

func TestRangoFecha(t *testing.T) {
	v := RangoFecha("Desde el 1 de marzo de 2025 hasta el 28 de febrero de 2026").(RangoFechaField)
	assert.Equal(t, "2025-03-01", v.FechaInicio)
	assert.Equal(t, "2026-02-28", v.FechaFin)
	assert.Equal(t, "1 de marzo de 2025", v.FechaInicioLarga)
	assert.Equal(t, "28 de febrero de 2026", v.FechaFinLarga)
}

func TestRangoFecha_FinHeredaAnio(t *testing.T) {
	v := RangoFecha("Del 1 de marzo al 30 de noviembre").(RangoFechaField)
	// no year anywhere: nothing parses
	assert.Empty(t, v.FechaInicio)

	v = RangoFecha("1 de marzo de 2025 hasta el 30 de noviembre").(RangoFechaField)
	assert.Equal(t, "2025-03-01", v.FechaInicio)
	assert.Equal(t, "2025-11-30", v.FechaFin)
}

func TestRangoFecha_SoloInicio(t *testing.T) {
	v := RangoFecha("1 de marzo de 2025").(RangoFechaField)
	assert.Equal(t, "2025-03-01", v.FechaInicio)
	assert.Empty(t, v.FechaFin)
}

func TestPlazo_DesdePorMeses(t *testing.T) {
	v := Plazo("Desde el 1 de enero de 2025 por 6 meses").(PlazoField)
	assert.Equal(t, "2025-01-01", v.FechaInicio)
	// months count as 30-day blocks
	assert.Equal(t, "2025-06-30", v.FechaFin)
	assert.Equal(t, 6, v.MesesNumeros)
	assert.Equal(t, "Seis", v.MesesLetras)
	assert.Equal(t, 0, v.AniosNumeros)
}

func TestPlazo_DesdePorAnios(t *testing.T) {
	v := Plazo("Desde el 15 de julio de 2024 por 2 años").(PlazoField)
	assert.Equal(t, "2024-07-15", v.FechaInicio)
	// years advance the calendar, not day blocks
	assert.Equal(t, "2026-07-15", v.FechaFin)
	assert.Equal(t, 2, v.AniosNumeros)
	assert.Equal(t, "Dos", v.AniosLetras)
	assert.Equal(t, 0, v.MesesNumeros)
}

func TestPlazo_DelAl(t *testing.T) {
	v := Plazo("Del 1 de enero de 2025 al 31 de diciembre de 2025").(PlazoField)
	assert.Equal(t, "2025-01-01", v.FechaInicio)
	assert.Equal(t, "2025-12-31", v.FechaFin)
}

func TestPlazo_Defaults(t *testing.T) {
	v := Plazo("no tengo fechas todavía").(PlazoField)
	assert.Equal(t, "No especificada", v.FechaInicio)
	assert.Equal(t, "No especificada", v.FechaFin)
	assert.Equal(t, 30, v.PreavisoDiasNumeros)
	assert.Equal(t, "Treinta", v.PreavisoDiasLetras)
	assert.Equal(t, "Dos", v.PenalidadMesesLetras)
	assert.Equal(t, "Cero", v.MesesLetras)
}

func TestLugarFecha(t *testing.T) {
	v := LugarFecha("Lima, 15 de marzo de 2025").(LugarFechaField)
	assert.Equal(t, "Lima", v.Lugar)
	assert.Equal(t, "2025-03-15", v.Fecha)
	assert.Equal(t, "15 de marzo de 2025", v.FechaLarga)
}

func TestLugarFecha_ConConector(t *testing.T) {
	v := LugarFecha("En Arequipa el 2 de febrero de 2026").(LugarFechaField)
	assert.Equal(t, "Arequipa", v.Lugar)
	assert.Equal(t, "2026-02-02", v.Fecha)
}

func TestLugarFecha_SinFecha(t *testing.T) {
	v := LugarFecha("Lima").(LugarFechaField)
	assert.Equal(t, "Lima", v.Lugar)
	assert.Empty(t, v.Fecha)
}

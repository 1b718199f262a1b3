package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/clauses"
	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/extract"
)

func arrendamientoRespuestas() map[string]string {
	return map[string]string{
		"arrendador":       "Manuel Leigh, DNI 76854553, domicilio en Calle Leoncio Prado 162",
		"arrendatario":     "Rosa Quispe, DNI 45678901, domicilio en Av. Brasil 500",
		"inmueble":         "Calle Sucre 100, Barranco, Lima, Lima",
		"plazo":            "Desde el 1 de enero de 2025 por 6 meses",
		"renta":            "Se pagan 400 soles mensuales y una garantía de 200 soles",
		"pago":             "Hasta el 5 de cada mes, cuenta de ahorros 19412345678901 del BCP",
		"inmueble_destino": "vivienda",
		"subarriendo":      "no",
		"jurisdiccion":     "Lima",
		"contrato":         "Lima, 15 de marzo de 2025",
	}
}

func TestMaterialize(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	tipo, _ := cat.Get("arrendamiento")

	limpio := Materialize(context.Background(), reg, tipo, arrendamientoRespuestas(),
		[]string{"Prohibido subarrendar"})

	assert.Equal(t, tipo.Nombre, limpio["titulo_contrato"])

	arrendador, ok := limpio["arrendador"].(extract.PersonaDireccionField)
	require.True(t, ok)
	assert.Equal(t, "Manuel Leigh", arrendador.Nombre)
	assert.Equal(t, "EL ARRENDADOR", arrendador.Tratamiento)

	arrendatario := limpio["arrendatario"].(extract.PersonaDireccionField)
	assert.Equal(t, "EL ARRENDATARIO", arrendatario.Tratamiento)

	plazo := limpio["plazo"].(extract.PlazoField)
	assert.Equal(t, "2025-01-01", plazo.FechaInicio)
	assert.Equal(t, 6, plazo.MesesNumeros)

	mapped, ok := limpio["clausulas_adicionales"].([]clauses.Mapped)
	require.True(t, ok)
	require.Len(t, mapped, 1)
	assert.Equal(t, "Cláusula de Prohibición de Subarriendo", mapped[0].Titulo)
}

func TestMaterialize_SkipsUnanswered(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	tipo, _ := cat.Get("arrendamiento")

	limpio := Materialize(context.Background(), reg, tipo,
		map[string]string{"jurisdiccion": "Lima"}, nil)

	assert.Equal(t, "Lima", limpio["jurisdiccion"])
	_, ok := limpio["arrendador"]
	assert.False(t, ok)
}

func TestMaterialize_Deterministico(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	tipo, _ := cat.Get("arrendamiento")
	respuestas := arrendamientoRespuestas()

	a := Materialize(context.Background(), reg, tipo, respuestas, nil)
	b := Materialize(context.Background(), reg, tipo, respuestas, nil)
	assert.Equal(t, a, b)
}

func TestPreliminar_AvanzaEstado(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	convo := &conversation.Context{
		TipoContrato: "arrendamiento",
		Estado:       conversation.GenerandoContrato,
		Respuestas:   arrendamientoRespuestas(),
	}

	limpio, plantilla, err := Preliminar(context.Background(), reg, cat, convo)
	require.NoError(t, err)

	assert.Equal(t, conversation.EsperandoAprobacionFormal, convo.Estado)
	assert.Equal(t, "arrendamiento_template", plantilla)
	assert.NotNil(t, convo.ContextoLimpio)
	assert.Equal(t, limpio["titulo_contrato"], convo.ContextoLimpio["titulo_contrato"])
}

func TestPreliminar_RecargaSinAvanzar(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	convo := &conversation.Context{
		TipoContrato: "arrendamiento",
		Estado:       conversation.EsperandoAprobacionFormal,
		Respuestas:   arrendamientoRespuestas(),
	}

	_, _, err := Preliminar(context.Background(), reg, cat, convo)
	require.NoError(t, err)
	assert.Equal(t, conversation.EsperandoAprobacionFormal, convo.Estado)
}

func TestPreliminar_EstadoInvalido(t *testing.T) {
	reg := extract.NewRegistry(nil)
	cat := catalog.Default()
	convo := &conversation.Context{
		TipoContrato: "arrendamiento",
		Estado:       conversation.SolicitandoDatos,
	}

	_, _, err := Preliminar(context.Background(), reg, cat, convo)
	assert.Error(t, err)
}

func TestPreliminar_TipoDesconocido(t *testing.T) {
	reg := extract.NewRegistry(nil)
	convo := &conversation.Context{
		TipoContrato: "inexistente",
		Estado:       conversation.GenerandoContrato,
	}

	_, _, err := Preliminar(context.Background(), reg, catalog.Default(), convo)
	assert.Error(t, err)
}

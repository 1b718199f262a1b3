package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "clausula de penalizacion", Fold("Cláusula de Penalización"))
	assert.Equal(t, "año", Fold("AÑO"))
}

func TestTokens(t *testing.T) {
	toks := Tokens("¡No se permiten mascotas, ni perros ni gatos!")
	assert.Equal(t, []string{"no", "se", "permiten", "mascotas", "ni", "perros", "ni", "gatos"}, toks)
}

func TestTokens_Empty(t *testing.T) {
	assert.Empty(t, Tokens("   "))
	assert.Empty(t, Tokens("¿?!"))
}

func TestLemma_Dictionary(t *testing.T) {
	m := Get()
	require.NotNil(t, m)
	assert.Equal(t, "mascota", m.Lemma("mascotas"))
	assert.Equal(t, "subarrendar", m.Lemma("subarriende"))
	assert.Equal(t, "romper", m.Lemma("roto"))
}

func TestLemma_PluralHeuristic(t *testing.T) {
	m := Get()
	assert.Equal(t, "condicion", m.Lemma("condiciones"))
	assert.Equal(t, "pago", m.Lemma("pagos"))
	// short words are left alone
	assert.Equal(t, "mes", m.Lemma("mes"))
}

func TestLemmas(t *testing.T) {
	m := Get()
	set := m.Lemmas("No se aceptan mascotas en el inmueble.")
	assert.True(t, set["mascota"])
	assert.True(t, set["inmueble"])
}

func TestAvailable(t *testing.T) {
	Get()
	assert.True(t, Available())
}

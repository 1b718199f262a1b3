// Package generate turns a finished conversation into the clean context the
// document templates consume, and commits formalized contracts through the
// storage collaborator.
package generate

import (
	"context"
	"fmt"

	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/clauses"
	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/extract"
)

// Materialize runs every stored raw answer through the extractor registry
// and attaches the mapped special clauses and the contract title. Questions
// without an answer are skipped; an extractor failure is contained to its
// field. Given the same answers (and a deterministic geocoding fallback)
// the result is identical on every run.
func Materialize(
	ctx context.Context,
	reg *extract.Registry,
	tipo catalog.ContractType,
	respuestas map[string]string,
	clausulasRaw []string,
) map[string]any {
	limpio := make(map[string]any)
	for _, p := range tipo.Preguntas {
		raw, ok := respuestas[p.Key]
		if !ok || raw == "" {
			continue
		}
		limpio[p.Key] = reg.Apply(ctx, p.TipoDato, raw)
	}

	limpio["clausulas_adicionales"] = clauses.Map(clausulasRaw)
	limpio["titulo_contrato"] = tipo.Nombre

	// Fixed party treatments for the lease template.
	setTratamiento(limpio, "arrendador", "EL ARRENDADOR")
	setTratamiento(limpio, "arrendatario", "EL ARRENDATARIO")
	return limpio
}

func setTratamiento(limpio map[string]any, key, tratamiento string) {
	if v, ok := limpio[key].(extract.PersonaDireccionField); ok {
		v.Tratamiento = tratamiento
		limpio[key] = v
	}
}

// Preliminar materializes the conversation's clean context in place. On the
// first pass (estado generando_contrato) it also advances the state to
// esperando_aprobacion_formal; a reload in that state only re-derives the
// context. Any other state is a caller error.
func Preliminar(
	ctx context.Context,
	reg *extract.Registry,
	cat *catalog.Catalog,
	convo *conversation.Context,
) (map[string]any, string, error) {
	tipo, ok := cat.Get(convo.TipoContrato)
	if !ok {
		return nil, "", fmt.Errorf("generate: unknown contract type %q", convo.TipoContrato)
	}

	switch convo.Estado {
	case conversation.GenerandoContrato:
		convo.ContextoLimpio = Materialize(ctx, reg, tipo, convo.Respuestas, convo.ClausulasEspeciales)
		convo.Estado = conversation.EsperandoAprobacionFormal
	case conversation.EsperandoAprobacionFormal:
		convo.ContextoLimpio = Materialize(ctx, reg, tipo, convo.Respuestas, convo.ClausulasEspeciales)
	default:
		return nil, "", fmt.Errorf(
			"generate: conversation is in state %q, not %q",
			convo.Estado, conversation.GenerandoContrato,
		)
	}
	return convo.ContextoLimpio, tipo.PlantillaAlias, nil
}

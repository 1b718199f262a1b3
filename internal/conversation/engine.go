package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/intent"
)

// SignersPrefix is the fixed textual prefix of a signer-confirmation
// message. The remainder of the message is a JSON array of Firmante
// records. The exact delimiter is part of the protocol with the signers
// front-end; change it only in lockstep with that collaborator.
const SignersPrefix = "Okay, procede a generar el contrato con estos firmantes:"

// Formalizer commits the materialized contract and its signers to durable
// storage. It is the external formalization collaborator.
type Formalizer interface {
	Formalizar(ctx context.Context, convo *Context, firmantes []Firmante) (codigo, contratoID string, err error)
}

// Engine drives one conversation turn at a time. It holds no per-session
// state and is safe for concurrent use across sessions; the caller must
// serialize turns within a session.
type Engine struct {
	Catalogo   *catalog.Catalog
	Formalizer Formalizer
}

func NewEngine(cat *catalog.Catalog, formalizer Formalizer) *Engine {
	return &Engine{Catalogo: cat, Formalizer: formalizer}
}

// HandleTurn consumes one user message, mutates the context exactly once
// and returns the reply text. Unknown stored states and formalization
// problems come back as errors; everything else is answered in-band.
func (e *Engine) HandleTurn(ctx context.Context, convo *Context, texto string) (string, error) {
	if !convo.Estado.Known() {
		return "", &UnknownStateError{State: convo.Estado}
	}

	if strings.HasPrefix(texto, SignersPrefix) {
		return e.handleSigners(ctx, convo, texto)
	}

	switch {
	case convo.TipoContrato == "":
		return e.detectType(convo, texto), nil
	case convo.Estado == SolicitandoDatos:
		return e.collectAnswer(convo, texto), nil
	case convo.Estado == Revision:
		return e.review(convo, texto), nil
	case convo.Estado == PreliminarConfirmacion:
		return e.confirmPreliminary(convo, texto), nil
	case convo.Estado == ClausulasEspeciales:
		return e.offerClauses(convo, texto), nil
	case convo.Estado == RegistrandoClausulas:
		return e.collectClauses(convo, texto), nil
	case convo.Estado == GenerandoContrato:
		return "Estoy generando el contrato preliminar. En un momento podrás revisarlo.", nil
	case convo.Estado == EsperandoAprobacionFormal:
		return "Por favor, responde 'sí' para abrir el formulario de firmantes o 'no' para revisar los datos.", nil
	case convo.Estado == Formalizado:
		return fmt.Sprintf(
			"Este chat ya generó el contrato %s.\n¿Deseas crear un nuevo contrato?",
			convo.CodigoContrato,
		), nil
	default:
		return "No entendí tu solicitud. ¿Podrías ser más específico?", nil
	}
}

func (e *Engine) detectType(convo *Context, texto string) string {
	id, ok := e.Catalogo.Detect(texto)
	if !ok {
		return "¿Podrías especificar qué tipo de contrato deseas elaborar? " +
			"Por ejemplo: arrendamiento, compraventa o prestación de servicios."
	}
	tipo, _ := e.Catalogo.Get(id)
	convo.TipoContrato = id
	convo.Estado = SolicitandoDatos
	convo.PreguntaActual = 0
	convo.Respuestas = make(map[string]string)
	return fmt.Sprintf(
		"He detectado que deseas elaborar un **%s**. ¿Podrías responderme la siguiente pregunta?\n\n%s",
		tipo.Nombre, tipo.Preguntas[0].Texto,
	)
}

func (e *Engine) collectAnswer(convo *Context, texto string) string {
	tipo, ok := e.Catalogo.Get(convo.TipoContrato)
	if !ok || convo.PreguntaActual >= len(tipo.Preguntas) {
		return "No entendí tu solicitud. ¿Podrías ser más específico?"
	}
	convo.storeAnswer(tipo.Preguntas[convo.PreguntaActual].Key, texto)
	convo.PreguntaActual++

	if convo.PreguntaActual < len(tipo.Preguntas) {
		return tipo.Preguntas[convo.PreguntaActual].Texto
	}
	convo.Estado = Revision
	return fmt.Sprintf(
		"Perfecto. Ya tengo toda la información necesaria para elaborar el contrato de **%s**.\n\n"+
			"¿Deseas que te muestre un resumen antes de generar el documento?",
		tipo.Nombre,
	)
}

func (e *Engine) review(convo *Context, texto string) string {
	switch intent.Classify(texto) {
	case intent.Affirmative:
		tipo, _ := e.Catalogo.Get(convo.TipoContrato)
		var b strings.Builder
		fmt.Fprintf(&b, "Has solicitado un contrato de **%s** con los siguientes detalles:\n", tipo.Nombre)
		for i, p := range tipo.Preguntas {
			respuesta, ok := convo.Respuestas[p.Key]
			if !ok {
				respuesta = "No proporcionada"
			}
			fmt.Fprintf(&b, "- **%d. %s**: %s\n", i+1, p.Texto, respuesta)
		}
		b.WriteString("\n¿Confirmas que toda la información es correcta para generar el contrato preliminar?\n" +
			"Responde 'sí' para confirmar o 'no' para corregir.")
		convo.Estado = PreliminarConfirmacion
		return b.String()
	case intent.Negative:
		// A "no" here restarts data collection from the first question.
		return e.restart(convo)
	default:
		return "Por favor, responde 'sí' para ver el resumen o 'no' para volver a ingresar los datos."
	}
}

func (e *Engine) confirmPreliminary(convo *Context, texto string) string {
	switch intent.Classify(texto) {
	case intent.Affirmative:
		convo.Estado = ClausulasEspeciales
		return "Perfecto. Antes de generar el contrato preliminar, " +
			"¿deseas agregar alguna cláusula especial o condición adicional? " +
			"Por ejemplo: penalidades, ampliaciones o condiciones de pago."
	case intent.Negative:
		return e.restart(convo)
	default:
		return "Por favor, responde 'sí' para confirmar o 'no' si deseas modificar algún dato."
	}
}

func (e *Engine) restart(convo *Context) string {
	tipo, _ := e.Catalogo.Get(convo.TipoContrato)
	convo.restartCollection()
	return "Entendido. Volvamos a ingresar los datos desde el inicio.\n\n" + tipo.Preguntas[0].Texto
}

func (e *Engine) offerClauses(convo *Context, texto string) string {
	switch intent.Classify(texto) {
	case intent.Negative:
		convo.Estado = GenerandoContrato
		if len(convo.ClausulasEspeciales) > 0 {
			return "Entendido. Procederé a generar el contrato con las cláusulas registradas."
		}
		convo.ClausulasEspeciales = []string{}
		return "Perfecto. Procederé a generar el contrato preliminar sin cláusulas adicionales."
	case intent.Affirmative:
		convo.Estado = RegistrandoClausulas
		return "Muy bien. Escribe las cláusulas o condiciones que quieras incluir.\n" +
			"Por ejemplo: 'El inquilino no podrá subarrendar el inmueble sin autorización escrita del arrendador.'"
	default:
		// Free text before an explicit yes/no counts as a first clause; a
		// deliberate low-friction path for the single-clause case.
		convo.ClausulasEspeciales = append(convo.ClausulasEspeciales, texto)
		return "Cláusula registrada. ¿Deseas agregar otra más o continuamos con el contrato?"
	}
}

func (e *Engine) collectClauses(convo *Context, texto string) string {
	if intent.IsNegative(texto) {
		convo.Estado = GenerandoContrato
		return "Entendido. Procederé a generar el contrato con las cláusulas registradas."
	}
	convo.ClausulasEspeciales = append(convo.ClausulasEspeciales, texto)
	return "Cláusula agregada. ¿Deseas incluir otra más?"
}

func (e *Engine) handleSigners(ctx context.Context, convo *Context, texto string) (string, error) {
	payload := strings.TrimSpace(strings.TrimPrefix(texto, SignersPrefix))
	var firmantes []Firmante
	if err := json.Unmarshal([]byte(payload), &firmantes); err != nil {
		return "Hubo un error al procesar los firmantes. Por favor, intenta de nuevo.",
			&MalformedSignersError{Cause: err}
	}
	if e.Formalizer == nil {
		return "", fmt.Errorf("conversation: no formalizer configured")
	}

	prevEstado := convo.Estado
	codigo, contratoID, err := e.Formalizer.Formalizar(ctx, convo, firmantes)
	if err != nil {
		// Roll back so the user can retry; detail stays in the log, the
		// user gets a generic message.
		convo.Estado = prevEstado
		log.Printf("conversation: formalizacion fallida: %v", err)
		return "Hubo un error al procesar los firmantes y formalizar el contrato. Por favor, intenta de nuevo.",
			fmt.Errorf("conversation: formalizar: %w", err)
	}
	convo.Estado = Formalizado
	convo.CodigoContrato = codigo
	convo.ContratoIDGenerado = contratoID
	return fmt.Sprintf(
		"¡Perfecto! Se ha formalizado tu contrato con todos los firmantes.\n\n**Código de Contrato:** %s",
		codigo,
	), nil
}

package conversation

import "fmt"

// State is the conversation's position in the intake flow. The zero value
// ("") together with an unset tipo_contrato means the flow has not started.
type State string

const (
	StateStart                State = ""
	SolicitandoDatos          State = "solicitando_datos"
	Revision                  State = "revision"
	PreliminarConfirmacion    State = "preliminar_confirmacion"
	ClausulasEspeciales       State = "clausulas_especiales"
	RegistrandoClausulas      State = "registrando_clausulas"
	GenerandoContrato         State = "generando_contrato"
	EsperandoAprobacionFormal State = "esperando_aprobacion_formal"
	Formalizado               State = "formalizado"
)

var knownStates = map[State]bool{
	StateStart:                true,
	SolicitandoDatos:          true,
	Revision:                  true,
	PreliminarConfirmacion:    true,
	ClausulasEspeciales:       true,
	RegistrandoClausulas:      true,
	GenerandoContrato:         true,
	EsperandoAprobacionFormal: true,
	Formalizado:               true,
}

// Known reports whether s is a state the machine understands. A context
// carrying an unknown state is a configuration error, not user input.
func (s State) Known() bool { return knownStates[s] }

// UnknownStateError signals a context whose stored state the machine does
// not recognize. It is fatal for the turn and surfaced to the caller.
type UnknownStateError struct {
	State State
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("conversation: unknown state %q", string(e.State))
}

// MalformedSignersError signals an unreadable signer-confirmation payload.
// The conversation state is left unchanged; the user is asked to retry.
type MalformedSignersError struct {
	Cause error
}

func (e *MalformedSignersError) Error() string {
	return fmt.Sprintf("conversation: malformed signers payload: %v", e.Cause)
}

func (e *MalformedSignersError) Unwrap() error { return e.Cause }

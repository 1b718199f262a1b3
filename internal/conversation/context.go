package conversation

// Context is the mutable per-session conversation state. The caller owns
// persistence and must serialize turns: the context is read, mutated by
// exactly one turn, then written back.
type Context struct {
	Estado         State             `json:"estado,omitempty"`
	TipoContrato   string            `json:"tipo_contrato,omitempty"`
	PreguntaActual int               `json:"pregunta_actual"`
	Respuestas     map[string]string `json:"respuestas,omitempty"`

	// ClausulasEspeciales accumulates raw clause texts in the order the
	// user supplied them; append-only within the clause states.
	ClausulasEspeciales []string `json:"clausulas_especiales,omitempty"`

	// ContextoLimpio is the materialized structure, written at generation
	// and possibly re-derived; nil until then.
	ContextoLimpio map[string]any `json:"contexto_limpio,omitempty"`

	// Write-once identifiers assigned at formalization.
	CodigoContrato     string `json:"codigo_contrato,omitempty"`
	ContratoIDGenerado string `json:"contrato_id_generado,omitempty"`
}

// Firmante is one signer record from the signer-confirmation payload.
type Firmante struct {
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
	Rol       string `json:"rol"`
	Correo    string `json:"correo,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
}

// storeAnswer records the raw answer for the question at index i; answers
// are append-only, an existing key is only overwritten after an explicit
// restart has cleared the map.
func (c *Context) storeAnswer(key, text string) {
	if c.Respuestas == nil {
		c.Respuestas = make(map[string]string)
	}
	c.Respuestas[key] = text
}

// restartCollection clears collected data and re-enters the question loop
// from the top. The selected contract type is kept: tipo_contrato is
// immutable for the session once set.
func (c *Context) restartCollection() {
	c.Estado = SolicitandoDatos
	c.PreguntaActual = 0
	c.Respuestas = make(map[string]string)
}

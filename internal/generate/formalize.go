package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/notarialabs/intake/internal/audit"
	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/extract"
)

// ContratoRecord is the durable contract row handed to the store.
type ContratoRecord struct {
	Codigo         string
	Titulo         string
	TipoContrato   string
	PlantillaAlias string
	Contenido      map[string]any
}

// FirmanteRecord is one signer row attached to a contract.
type FirmanteRecord struct {
	Nombre    string
	Documento string
	Rol       string
	Correo    string
	Telefono  string
	Estado    string
}

// ContratoStore is the persistence collaborator for formalization. The
// whole commit must be atomic: either the contract and all its signers are
// written or nothing is.
type ContratoStore interface {
	ContarContratosDelDia(ctx context.Context, dia time.Time) (int, error)
	CrearContrato(ctx context.Context, c ContratoRecord, firmantes []FirmanteRecord) (contratoID string, err error)
}

// Service implements conversation.Formalizer on top of a ContratoStore.
type Service struct {
	Registry *extract.Registry
	Catalogo *catalog.Catalog
	Store    ContratoStore

	// Audit, when set, receives one entry per formalization attempt.
	Audit *audit.Auditor

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewService(reg *extract.Registry, cat *catalog.Catalog, store ContratoStore) *Service {
	return &Service{Registry: reg, Catalogo: cat, Store: store, now: time.Now}
}

// CodigoContrato builds the daily-sequenced contract code
// (CONT-2026-08-29-0001).
func CodigoContrato(dia time.Time, seq int) string {
	return fmt.Sprintf("CONT-%04d-%02d-%02d-%04d", dia.Year(), dia.Month(), dia.Day(), seq)
}

// Formalizar commits the materialized context plus the confirmed signer
// list. It requires the conversation to be awaiting formal approval with a
// clean context present; the conversation's own state fields are written by
// the engine after this returns, so a failing store call leaves the
// conversation retryable.
func (s *Service) Formalizar(
	ctx context.Context,
	convo *conversation.Context,
	firmantes []conversation.Firmante,
) (string, string, error) {
	if convo.Estado != conversation.EsperandoAprobacionFormal {
		return "", "", fmt.Errorf(
			"generate: conversation is in state %q, not awaiting formal approval", convo.Estado)
	}
	if convo.ContextoLimpio == nil {
		return "", "", fmt.Errorf("generate: no materialized context to formalize")
	}
	tipo, ok := s.Catalogo.Get(convo.TipoContrato)
	if !ok {
		return "", "", fmt.Errorf("generate: unknown contract type %q", convo.TipoContrato)
	}

	dia := s.now().UTC()
	count, err := s.Store.ContarContratosDelDia(ctx, dia)
	if err != nil {
		return "", "", fmt.Errorf("generate: contar contratos: %w", err)
	}
	codigo := CodigoContrato(dia, count+1)

	registros := s.collectSigners(tipo, convo)
	for _, f := range firmantes {
		registros = append(registros, FirmanteRecord{
			Nombre:    f.Nombre,
			Documento: f.Documento,
			Rol:       f.Rol,
			Correo:    f.Correo,
			Telefono:  f.Telefono,
			Estado:    "INVITADO",
		})
	}

	titulo, _ := convo.ContextoLimpio["titulo_contrato"].(string)
	if titulo == "" {
		titulo = tipo.Nombre
	}
	contratoID, err := s.Store.CrearContrato(ctx, ContratoRecord{
		Codigo:         codigo,
		Titulo:         titulo,
		TipoContrato:   tipo.ID,
		PlantillaAlias: tipo.PlantillaAlias,
		Contenido:      convo.ContextoLimpio,
	}, registros)
	s.Audit.Log("formalizacion", tipo.ID, codigo, registros, err)
	if err != nil {
		return "", "", fmt.Errorf("generate: crear contrato: %w", err)
	}
	return codigo, contratoID, nil
}

// collectSigners derives signer rows from the questions flagged es_firmante,
// reading name and document out of the materialized field values.
func (s *Service) collectSigners(tipo catalog.ContractType, convo *conversation.Context) []FirmanteRecord {
	var out []FirmanteRecord
	for _, p := range tipo.Preguntas {
		if !p.EsFirmante {
			continue
		}
		value, ok := convo.ContextoLimpio[p.Key]
		if !ok {
			continue
		}
		var nombre, documento string
		switch v := value.(type) {
		case extract.PersonaDNIField:
			nombre, documento = v.NombreCompleto, v.DNI
		case extract.PersonaEmpresaField:
			nombre, documento = v.NombreRazonSocial, v.DocumentoNumero
		case extract.PersonaDireccionField:
			nombre, documento = v.Nombre, v.DNI
		case map[string]any:
			// materialized context that round-tripped through JSON
			nombre = firstString(v, "nombre_completo", "nombre_razon_social", "nombre")
			documento = firstString(v, "dni", "documento_numero", "documento")
		default:
			continue
		}
		if nombre == "" {
			continue
		}
		out = append(out, FirmanteRecord{
			Nombre:    nombre,
			Documento: documento,
			Rol:       p.RolFirmante,
			Estado:    "INVITADO",
		})
	}
	return out
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

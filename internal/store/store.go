// Package store is the reference persistence implementation behind the
// conversation core: chats with their per-turn context JSON, the message
// log, and the formalized contracts with their signers.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/generate"
)

var ErrChatNotFound = errors.New("store: chat not found")

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS chats (
			id TEXT PRIMARY KEY,
			usuario TEXT NOT NULL,
			contexto TEXT NOT NULL DEFAULT '{}',
			fecha_creacion DATETIME NOT NULL,
			fecha_actualizacion DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mensajes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id TEXT NOT NULL REFERENCES chats(id),
			remitente TEXT NOT NULL,
			contenido TEXT NOT NULL,
			fecha_creacion DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contratos (
			id TEXT PRIMARY KEY,
			codigo TEXT NOT NULL UNIQUE,
			titulo TEXT NOT NULL,
			tipo_contrato TEXT NOT NULL,
			plantilla TEXT NOT NULL,
			contenido TEXT NOT NULL,
			estado TEXT NOT NULL,
			fecha_creacion DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS firmantes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			contrato_id TEXT NOT NULL REFERENCES contratos(id),
			nombre TEXT NOT NULL,
			documento TEXT,
			rol TEXT,
			correo TEXT,
			telefono TEXT,
			estado TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Chat is one conversation session with its serialized context.
type Chat struct {
	ID                 string               `json:"id"`
	Usuario            string               `json:"usuario"`
	Contexto           conversation.Context `json:"contexto"`
	FechaCreacion      time.Time            `json:"fecha_creacion"`
	FechaActualizacion time.Time            `json:"fecha_actualizacion"`
}

// Mensaje is one logged turn message, user or system side.
type Mensaje struct {
	ID            int64     `json:"id"`
	ChatID        string    `json:"chat_id"`
	Remitente     string    `json:"remitente"`
	Contenido     string    `json:"contenido"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// CrearChat creates an empty conversation for usuario.
func (s *Store) CrearChat(ctx context.Context, usuario string) (Chat, error) {
	now := time.Now().UTC()
	chat := Chat{
		ID:                 uuid.NewString(),
		Usuario:            usuario,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (id, usuario, contexto, fecha_creacion, fecha_actualizacion)
		 VALUES (?, ?, '{}', ?, ?)`,
		chat.ID, chat.Usuario, now, now,
	)
	if err != nil {
		return Chat{}, fmt.Errorf("store: crear chat: %w", err)
	}
	return chat, nil
}

// ObtenerChat loads a chat and deserializes its context.
func (s *Store) ObtenerChat(ctx context.Context, id string) (Chat, error) {
	var chat Chat
	var contexto string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, usuario, contexto, fecha_creacion, fecha_actualizacion FROM chats WHERE id = ?`, id,
	).Scan(&chat.ID, &chat.Usuario, &contexto, &chat.FechaCreacion, &chat.FechaActualizacion)
	if errors.Is(err, sql.ErrNoRows) {
		return Chat{}, ErrChatNotFound
	}
	if err != nil {
		return Chat{}, fmt.Errorf("store: obtener chat %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(contexto), &chat.Contexto); err != nil {
		return Chat{}, fmt.Errorf("store: chat %s: decode contexto: %w", id, err)
	}
	return chat, nil
}

// GuardarContexto writes the post-turn context back. Turn serialization is
// the caller's job: one read-modify-write per turn.
func (s *Store) GuardarContexto(ctx context.Context, id string, convo *conversation.Context) error {
	data, err := json.Marshal(convo)
	if err != nil {
		return fmt.Errorf("store: encode contexto: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE chats SET contexto = ?, fecha_actualizacion = ? WHERE id = ?`,
		string(data), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("store: guardar contexto %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrChatNotFound
	}
	return nil
}

// GuardarMensaje appends one message to the chat log.
func (s *Store) GuardarMensaje(ctx context.Context, chatID, remitente, contenido string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mensajes (chat_id, remitente, contenido, fecha_creacion) VALUES (?, ?, ?, ?)`,
		chatID, remitente, contenido, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store: guardar mensaje: %w", err)
	}
	return nil
}

// ListarMensajes returns the chat log in insertion order.
func (s *Store) ListarMensajes(ctx context.Context, chatID string) ([]Mensaje, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, remitente, contenido, fecha_creacion
		 FROM mensajes WHERE chat_id = ? ORDER BY id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("store: listar mensajes: %w", err)
	}
	defer rows.Close()
	var out []Mensaje
	for rows.Next() {
		var m Mensaje
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Remitente, &m.Contenido, &m.FechaCreacion); err != nil {
			return nil, fmt.Errorf("store: listar mensajes: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ContarContratosDelDia counts contracts created on the given calendar day,
// used for the daily sequence in contract codes.
func (s *Store) ContarContratosDelDia(ctx context.Context, dia time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contratos WHERE DATE(fecha_creacion) = DATE(?)`, dia.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("store: contar contratos: %w", err)
	}
	return count, nil
}

// CrearContrato writes the contract and all its signers in one transaction.
func (s *Store) CrearContrato(
	ctx context.Context,
	rec generate.ContratoRecord,
	firmantes []generate.FirmanteRecord,
) (string, error) {
	contenido, err := json.Marshal(rec.Contenido)
	if err != nil {
		return "", fmt.Errorf("store: encode contenido: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: crear contrato: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO contratos (id, codigo, titulo, tipo_contrato, plantilla, contenido, estado, fecha_creacion)
		 VALUES (?, ?, ?, ?, ?, ?, 'borrador', ?)`,
		id, rec.Codigo, rec.Titulo, rec.TipoContrato, rec.PlantillaAlias, string(contenido), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("store: insertar contrato: %w", err)
	}
	for _, f := range firmantes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO firmantes (contrato_id, nombre, documento, rol, correo, telefono, estado)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, f.Nombre, f.Documento, f.Rol, f.Correo, f.Telefono, f.Estado,
		)
		if err != nil {
			return "", fmt.Errorf("store: insertar firmante %s: %w", f.Nombre, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: crear contrato: %w", err)
	}
	return id, nil
}

// ListarFirmantes returns the signers of a contract in insertion order.
func (s *Store) ListarFirmantes(ctx context.Context, contratoID string) ([]generate.FirmanteRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT nombre, documento, rol, correo, telefono, estado
		 FROM firmantes WHERE contrato_id = ? ORDER BY id`, contratoID)
	if err != nil {
		return nil, fmt.Errorf("store: listar firmantes: %w", err)
	}
	defer rows.Close()
	var out []generate.FirmanteRecord
	for rows.Next() {
		var f generate.FirmanteRecord
		var documento, rol, correo, telefono sql.NullString
		if err := rows.Scan(&f.Nombre, &documento, &rol, &correo, &telefono, &f.Estado); err != nil {
			return nil, fmt.Errorf("store: listar firmantes: %w", err)
		}
		f.Documento, f.Rol, f.Correo, f.Telefono = documento.String, rol.String, correo.String, telefono.String
		out = append(out, f)
	}
	return out, rows.Err()
}

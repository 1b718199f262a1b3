package audit

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Auditor keeps a formalization audit trail in its own sqlite file,
// separate from the chat store. Write failures are logged and swallowed:
// auditing never blocks a contract commit.
type Auditor struct {
	db *sql.DB
}

type Entry struct {
	ID           int64     `json:"id"`
	Evento       string    `json:"evento"`
	TipoContrato string    `json:"tipo_contrato"`
	Codigo       string    `json:"codigo,omitempty"`
	Detalle      string    `json:"detalle,omitempty"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func New(path string) *Auditor {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Printf("Failed to open audit DB: %v", err)
		return &Auditor{}
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		evento TEXT NOT NULL,
		tipo_contrato TEXT,
		codigo TEXT,
		detalle TEXT,
		error TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		log.Printf("Failed to create audit table: %v", err)
	}
	return &Auditor{db: db}
}

// Log records one formalization event. detalle is serialized to JSON.
func (a *Auditor) Log(evento, tipoContrato, codigo string, detalle any, err error) {
	if a == nil || a.db == nil {
		return
	}
	var errStr string
	if err != nil {
		errStr = err.Error()
	}
	var detalleStr string
	if detalle != nil {
		if b, merr := json.Marshal(detalle); merr == nil {
			detalleStr = string(b)
		}
	}
	_, werr := a.db.Exec(
		"INSERT INTO audit_log (evento, tipo_contrato, codigo, detalle, error) VALUES (?, ?, ?, ?, ?)",
		evento, tipoContrato, codigo, detalleStr, errStr,
	)
	if werr != nil {
		log.Printf("Failed to write audit log: %v", werr)
	}
}

// Recent returns the newest limit audit entries.
func (a *Auditor) Recent(limit int) ([]Entry, error) {
	if a == nil || a.db == nil {
		return nil, nil
	}
	rows, err := a.db.Query(
		`SELECT id, evento, tipo_contrato, codigo, detalle, error, timestamp
		 FROM audit_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Evento, &e.TipoContrato, &e.Codigo, &e.Detalle, &e.Error, &e.Timestamp); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (a *Auditor) Close() {
	if a != nil && a.db != nil {
		a.db.Close()
	}
}

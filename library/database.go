package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Reasons a journaled loan was closed.
const (
	ClosedReturned    = "returned"
	ClosedBookRemoved = "book removed"
)

// LoanRecord is one journaled loan, open or closed.
type LoanRecord struct {
	ID          int64
	Title       string
	Borrower    string
	DueDate     string
	OpenedAt    time.Time
	ClosedAt    sql.NullTime
	CloseReason string
}

// Open reports whether the loan has not been closed yet.
func (r LoanRecord) Open() bool { return !r.ClosedAt.Valid }

// History journals loan events in SQLite. The flat files stay the source of
// truth for current state; the journal only answers "who had this before".
type History struct {
	db *sql.DB

	openStmt  *sql.Stmt
	closeStmt *sql.Stmt
}

// NewHistory opens (or creates) the journal at dbPath and applies the schema.
func NewHistory(dbPath string) (*History, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	h := &History{db: db}
	if err := h.prepareStatements(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// Close releases prepared statements and closes the DB.
func (h *History) Close() error {
	if h.openStmt != nil {
		h.openStmt.Close()
	}
	if h.closeStmt != nil {
		h.closeStmt.Close()
	}
	return h.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL COLLATE NOCASE,
            borrower TEXT NOT NULL,
            due_date TEXT NOT NULL,
            opened_at DATETIME NOT NULL,
            closed_at DATETIME,
            close_reason TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE INDEX IF NOT EXISTS idx_loans_title ON loans(title);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

func (h *History) prepareStatements() error {
	var err error
	if h.openStmt, err = h.db.Prepare(`INSERT INTO loans(title,borrower,due_date,opened_at) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if h.closeStmt, err = h.db.Prepare(`UPDATE loans SET closed_at=?, close_reason=? WHERE title=? AND closed_at IS NULL`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Journal
// ---------------------------------------------------------------------------

// LoanOpened records l as starting at.
func (h *History) LoanOpened(l *Loan, at time.Time) (int64, error) {
	res, err := h.openStmt.Exec(l.Title, l.Borrower, l.ReturnDate.Format(DateLayout), at)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LoanClosed closes every open record for title.
func (h *History) LoanClosed(title, reason string, at time.Time) error {
	_, err := h.closeStmt.Exec(at, reason, title)
	return err
}

// LoanEdited refreshes the borrower and due date of the open record for l.
func (h *History) LoanEdited(l *Loan) error {
	_, err := h.db.Exec(`UPDATE loans SET borrower=?, due_date=? WHERE title=? AND closed_at IS NULL`,
		l.Borrower, l.ReturnDate.Format(DateLayout), l.Title)
	return err
}

// Retitled moves all records of oldTitle to newTitle.
func (h *History) Retitled(oldTitle, newTitle string) error {
	_, err := h.db.Exec(`UPDATE loans SET title=? WHERE title=?`, newTitle, oldTitle)
	return err
}

// ForBook returns every record for title, oldest first.
func (h *History) ForBook(title string) ([]*LoanRecord, error) {
	rows, err := h.db.Query(`SELECT id,title,borrower,due_date,opened_at,closed_at,close_reason
        FROM loans WHERE title=? ORDER BY id`, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*LoanRecord
	for rows.Next() {
		var r LoanRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Borrower, &r.DueDate, &r.OpenedAt, &r.ClosedAt, &r.CloseReason); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Entry is one remembered document.
type Entry struct {
	ID        string
	Path      string
	Title     string
	LastPage  int
	TextWidth int
	OpenedAt  time.Time
}

// Repo handles the recently-opened list.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Touch records that path was opened now, keeping any stored reading
// position, and returns the stored entry.
func (r *Repo) Touch(ctx context.Context, path, title string) (Entry, error) {
	var e Entry
	err := WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO documents(id, path, title, last_page, opened_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(path) DO UPDATE SET
		 title=excluded.title,
		 opened_at=excluded.opened_at;
		`, uuid.NewString(), path, title, Now())
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `SELECT id, path, title, last_page, text_width, opened_at FROM documents WHERE path = ?`, path).
			Scan(&e.ID, &e.Path, &e.Title, &e.LastPage, &e.TextWidth, &e.OpenedAt)
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *Repo) Get(ctx context.Context, path string) (Entry, error) {
	var e Entry
	err := r.db.QueryRowContext(ctx, `SELECT id, path, title, last_page, text_width, opened_at FROM documents WHERE path = ?`, path).
		Scan(&e.ID, &e.Path, &e.Title, &e.LastPage, &e.TextWidth, &e.OpenedAt)
	return e, err
}

// List returns entries most recently opened first.
func (r *Repo) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, path, title, last_page, text_width, opened_at FROM documents ORDER BY opened_at DESC, path LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Path, &e.Title, &e.LastPage, &e.TextWidth, &e.OpenedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SetPosition stores the reading position to restore on the next open.
// Unknown paths are ignored.
func (r *Repo) SetPosition(ctx context.Context, path string, page, textWidth int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE documents SET last_page = ?, text_width = ? WHERE path = ?`, page, textWidth, path)
	return err
}

func (r *Repo) Remove(ctx context.Context, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path)
	return err
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pdf_templates (
	id           BIGSERIAL PRIMARY KEY,
	advocate_id  TEXT NOT NULL,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	color_scheme JSONB NOT NULL DEFAULT '{}',
	header       JSONB NOT NULL DEFAULT '{}',
	footer       JSONB NOT NULL DEFAULT '{}',
	sections     JSONB NOT NULL DEFAULT '{}',
	table_style  JSONB NOT NULL DEFAULT '{}',
	page_margins JSONB NOT NULL DEFAULT '{}',
	is_default   BOOLEAN NOT NULL DEFAULT false,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (advocate_id, name)
);
CREATE INDEX IF NOT EXISTS pdf_templates_default_idx
	ON pdf_templates (advocate_id) WHERE is_default`

const selectDefaultSQL = `
SELECT name, description, color_scheme, header, footer, sections, table_style, page_margins
FROM pdf_templates
WHERE advocate_id = $1 AND is_default = true
ORDER BY updated_at DESC
LIMIT 1`

const clearDefaultsSQL = `
UPDATE pdf_templates
SET is_default = false, updated_at = now()
WHERE advocate_id = $1 AND name <> $2 AND is_default = true`

const upsertSQL = `
INSERT INTO pdf_templates
	(advocate_id, name, description, color_scheme, header, footer, sections, table_style, page_margins, is_default, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, now())
ON CONFLICT (advocate_id, name) DO UPDATE SET
	description  = EXCLUDED.description,
	color_scheme = EXCLUDED.color_scheme,
	header       = EXCLUDED.header,
	footer       = EXCLUDED.footer,
	sections     = EXCLUDED.sections,
	table_style  = EXCLUDED.table_style,
	page_margins = EXCLUDED.page_margins,
	is_default   = true,
	updated_at   = now()
RETURNING name, description, color_scheme, header, footer, sections, table_style, page_margins`

// Postgres stores templates in the pdf_templates table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// OpenPostgres connects with the lib/pq driver and checks the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, wrapPQ("open", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, wrapPQ("ping", err)
	}
	return &Postgres{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Postgres) Close() error {
	return s.db.Close()
}

// Migrate creates the table and its default index when absent.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return wrapPQ("migrate", err)
	}
	return nil
}

// LoadDefaultTemplate returns the most recently updated default row.
func (s *Postgres) LoadDefaultTemplate(ctx context.Context, accountID string) (*model.Template, error) {
	if err := CheckAccount(accountID); err != nil {
		return nil, err
	}
	r, err := scanRow(s.db.QueryRowContext(ctx, selectDefaultSQL, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", ErrTemplateNotFound, accountID)
	}
	if err != nil {
		return nil, wrapPQ("load", err)
	}
	t := r.template()
	return &t, nil
}

// SaveTemplate upserts t as the account's only default in one transaction.
func (s *Postgres) SaveTemplate(ctx context.Context, accountID string, t model.Template) (model.Template, error) {
	t, err := prepare(accountID, t)
	if err != nil {
		return model.Template{}, err
	}
	cols, err := rowFrom(accountID, t).jsonColumns()
	if err != nil {
		return model.Template{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Template{}, wrapPQ("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, clearDefaultsSQL, accountID, t.Name); err != nil {
		return model.Template{}, wrapPQ("clear defaults", err)
	}
	saved, err := scanRow(tx.QueryRowContext(ctx, upsertSQL,
		accountID, t.Name, t.Description,
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5],
	))
	if err != nil {
		return model.Template{}, wrapPQ("upsert", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Template{}, wrapPQ("commit", err)
	}
	return saved.template(), nil
}

func scanRow(sc interface{ Scan(...any) error }) (row, error) {
	var (
		r   row
		raw [6][]byte
	)
	if err := sc.Scan(&r.Name, &r.Description, &raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5]); err != nil {
		return row{}, err
	}
	if err := r.decodeColumns(raw); err != nil {
		return row{}, err
	}
	return r, nil
}

// wrapPQ classifies err under ErrStore, naming the Postgres error code when
// the server reported one.
func wrapPQ(op string, err error) error {
	if errors.Is(err, ErrStore) {
		return err
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: %s: %s (%s)", ErrStore, op, pqErr.Message, pqErr.Code.Name())
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

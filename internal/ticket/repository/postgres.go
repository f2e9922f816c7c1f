package repository

import (
	"context"
	"database/sql"
	"errors"

	"civic-reporting/backend/internal/ticket/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a ticket repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertIfAbsent inserts the ticket; a conflicting ID leaves the existing row
// untouched. Single-statement upsert, no transaction needed: only one logical
// consumer writes.
func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, t *domain.Ticket) error {
	notes := sql.NullString{String: t.Notes, Valid: t.Notes != ""}
	contact := sql.NullString{String: t.Contact, Valid: t.Contact != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, concern, notes, user_name, contact, lat, lng, area, created_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		t.ID, t.Concern, notes, t.UserName, contact, t.Lat, t.Lng, t.Area, t.Timestamp,
	)
	return err
}

// GetByID returns the ticket for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, concern, notes, user_name, contact, lat, lng, area, created_ms
		 FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// ListAll returns all tickets ordered by creation timestamp descending.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, concern, notes, user_name, contact, lat, lng, area, created_ms
		 FROM tickets ORDER BY created_ms DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTicket(scan func(dest ...any) error) (*domain.Ticket, error) {
	var t domain.Ticket
	var notes, contact sql.NullString
	if err := scan(&t.ID, &t.Concern, &notes, &t.UserName, &contact, &t.Lat, &t.Lng, &t.Area, &t.Timestamp); err != nil {
		return nil, err
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	if contact.Valid {
		t.Contact = contact.String
	}
	return &t, nil
}

var _ Repository = (*PostgresRepository)(nil)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/movilidad/internal/worker"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectWorkerColumns = `
	worker_id, email, first_name, last_name, COALESCE(employer_id, ''), default_project, active
`

func (s *Store) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	query := `SELECT ` + selectWorkerColumns + ` FROM workers WHERE worker_id = $1`

	w, err := scanWorker(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("finding worker by id: %w", err)
	}

	return w, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*worker.Worker, error) {
	query := `SELECT ` + selectWorkerColumns + ` FROM workers WHERE LOWER(email) = LOWER($1)`

	w, err := scanWorker(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("finding worker by email: %w", err)
	}

	return w, nil
}

func scanWorker(row *sql.Row) (*worker.Worker, error) {
	var w worker.Worker

	var active sql.NullString

	err := row.Scan(&w.ID, &w.Email, &w.FirstName, &w.LastName, &w.EmployerID, &w.DefaultProject, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, worker.ErrNotFound
		}

		return nil, err
	}

	w.Active = parseActive(active.String)

	return &w, nil
}

// parseActive accepts every encoding the active flag has had across schema
// revisions. Anything unrecognized counts as inactive.
func parseActive(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "s", "si", "sí", "on", "active", "activo":
		return true
	}

	return false
}

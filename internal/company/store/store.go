package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByID(ctx context.Context, employerID string) (*company.Company, error) {
	query := `
		SELECT employer_id, legal_name, tax_id, address, phone
		FROM companies
		WHERE employer_id = $1
	`

	var c company.Company

	err := s.db.QueryRowContext(ctx, query, employerID).Scan(
		&c.EmployerID, &c.LegalName, &c.TaxID, &c.Address, &c.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("finding company: %w", err)
	}

	return &c, nil
}

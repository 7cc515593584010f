package company

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("company not found")

// Company is the employer snapshot returned alongside an accepted claim.
type Company struct {
	EmployerID string `json:"employer_id"`
	LegalName  string `json:"legal_name"`
	TaxID      string `json:"tax_id"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

//go:generate mockgen -source=company.go -destination=repository_mock.go -package=company
type Repository interface {
	FindByID(ctx context.Context, employerID string) (*Company, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByID returns ErrNotFound for blank or unknown employer ids.
func (s *Service) FindByID(ctx context.Context, employerID string) (*Company, error) {
	if employerID == "" {
		return nil, ErrNotFound
	}

	return s.repo.FindByID(ctx, employerID)
}

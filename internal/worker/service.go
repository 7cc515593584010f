package worker

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=worker
type Repository interface {
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByEmail(ctx context.Context, email string) (*Worker, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByIdentifier resolves a national id or an email address to a worker.
// Returns ErrNotFound when neither matches.
func (s *Service) FindByIdentifier(ctx context.Context, idOrEmail string) (*Worker, error) {
	key := strings.TrimSpace(idOrEmail)
	if key == "" {
		return nil, ErrNotFound
	}

	if strings.Contains(key, "@") {
		return s.repo.FindByEmail(ctx, strings.ToLower(key))
	}

	return s.repo.FindByID(ctx, key)
}

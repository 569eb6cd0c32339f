package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clubpuntos/loyalty-system/internal/api/metrics"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// CatalogService implements kind-parametrized CRUD over benefit and prize
// records. Entries have independent lifecycles; no cross-entry invariant
// exists.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error) {
	if !kind.IsValid() {
		return nil, domain.ErrUnknownKind
	}
	return s.repo.List(ctx, kind)
}

func (s *CatalogService) Get(ctx context.Context, kind domain.CatalogKind, id string) (*domain.CatalogEntry, error) {
	if !kind.IsValid() {
		return nil, domain.ErrUnknownKind
	}
	return s.repo.FindByID(ctx, kind, id)
}

func (s *CatalogService) Create(ctx context.Context, kind domain.CatalogKind, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	if err := entry.Validate(kind); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, kind, entry)
	if err != nil {
		return nil, err
	}

	metrics.CatalogOperationsTotal.WithLabelValues(string(kind), "create").Inc()
	s.log.Info().Str("kind", string(kind)).Str("entry_id", created.ID).Msg("catalog entry created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, kind domain.CatalogKind, id string, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	if err := entry.Validate(kind); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, kind, id, entry)
	if err != nil {
		return nil, err
	}

	metrics.CatalogOperationsTotal.WithLabelValues(string(kind), "update").Inc()
	return updated, nil
}

// Delete removes the entry. A repeated delete on the same id fails with
// ErrEntryNotFound.
func (s *CatalogService) Delete(ctx context.Context, kind domain.CatalogKind, id string) error {
	if !kind.IsValid() {
		return domain.ErrUnknownKind
	}

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}

	metrics.CatalogOperationsTotal.WithLabelValues(string(kind), "delete").Inc()
	return nil
}

package ports

import (
	"context"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

// CatalogRepository defines persistence for benefit and prize records.
// Each kind is an independent collection; entries carry no references to
// accounts.
type CatalogRepository interface {
	List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error)
	FindByID(ctx context.Context, kind domain.CatalogKind, id string) (*domain.CatalogEntry, error)
	Insert(ctx context.Context, kind domain.CatalogKind, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
	// Update replaces the entry's stored fields with entry's values; fields
	// the caller left empty are cleared, not preserved.
	Update(ctx context.Context, kind domain.CatalogKind, id string, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
	// Delete removes the entry. Deleting a missing id fails with
	// domain.ErrEntryNotFound; repeat deletes are not idempotent.
	Delete(ctx context.Context, kind domain.CatalogKind, id string) error
}

// CatalogService exposes kind-parametrized CRUD over catalog entries.
type CatalogService interface {
	List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error)
	Get(ctx context.Context, kind domain.CatalogKind, id string) (*domain.CatalogEntry, error)
	Create(ctx context.Context, kind domain.CatalogKind, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
	Update(ctx context.Context, kind domain.CatalogKind, id string, entry *domain.CatalogEntry) (*domain.CatalogEntry, error)
	Delete(ctx context.Context, kind domain.CatalogKind, id string) error
}

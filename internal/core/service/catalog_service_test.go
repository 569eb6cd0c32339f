package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

func newCatalog() *CatalogService {
	return NewCatalogService(newStubCatalogRepo(), zerolog.Nop())
}

func TestCatalogService_Create_BenefitRequiresTitle(t *testing.T) {
	svc := newCatalog()

	_, err := svc.Create(context.Background(), domain.KindBenefit, &domain.CatalogEntry{
		Name:   "Coffee",
		Slogan: "Free refill",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCatalogService_Create_PrizeRequiresNameAndCategory(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{Category: "Accessories"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{Name: "Mug"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing category, got %v", err)
	}
}

func TestCatalogService_Create_RoundTrip(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.KindBenefit, &domain.CatalogEntry{
		Name:         "Coffee",
		Slogan:       "Free refill",
		Title:        "Free coffee refill",
		Description:  "One refill per visit",
		Validity:     "2026-12-31",
		Restrictions: "Weekdays only",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.Get(ctx, domain.KindBenefit, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != *created {
		t.Fatalf("round trip mismatch:\ncreated: %+v\ngot:     %+v", created, got)
	}

	entries, err := svc.List(ctx, domain.KindBenefit)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestCatalogService_KindsAreIndependent(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{Name: "Mug", Category: "Accessories"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	benefits, err := svc.List(ctx, domain.KindBenefit)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(benefits) != 0 {
		t.Fatalf("prize leaked into benefit partition: %+v", benefits)
	}
}

func TestCatalogService_Update_SetsPointCost(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{Name: "Mug", Category: "Accessories"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Update(ctx, domain.KindPrize, created.ID, &domain.CatalogEntry{
		Name:      "Mug",
		Category:  "Accessories",
		PointCost: 500,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	prizes, err := svc.List(ctx, domain.KindPrize)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(prizes) != 1 {
		t.Fatalf("expected exactly 1 prize, got %d", len(prizes))
	}
	if prizes[0].PointCost != 500 {
		t.Fatalf("expected point cost 500, got %d", prizes[0].PointCost)
	}
}

func TestCatalogService_Update_ClearsOmittedFields(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{
		Name:        "Mug",
		Category:    "Accessories",
		Description: "Ceramic, 350ml",
		PointCost:   500,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Update is a replacement: fields the caller leaves empty are cleared.
	updated, err := svc.Update(ctx, domain.KindPrize, created.ID, &domain.CatalogEntry{
		Name:     "Mug",
		Category: "Accessories",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != "" {
		t.Fatalf("expected description cleared, got %q", updated.Description)
	}
	if updated.PointCost != 0 {
		t.Fatalf("expected point cost cleared, got %d", updated.PointCost)
	}

	got, err := svc.Get(ctx, domain.KindPrize, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "" || got.PointCost != 0 {
		t.Fatalf("cleared fields resurfaced on read: %+v", got)
	}
}

func TestCatalogService_Update_Missing(t *testing.T) {
	svc := newCatalog()

	_, err := svc.Update(context.Background(), domain.KindBenefit, "missing", &domain.CatalogEntry{Title: "X"})
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestCatalogService_Delete_ThenGetFails(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.KindPrize, &domain.CatalogEntry{Name: "Mug", Category: "Accessories"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, domain.KindPrize, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, domain.KindPrize, created.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound after delete, got %v", err)
	}

	// Repeat delete on a missing id fails; deletes are not idempotent.
	if err := svc.Delete(ctx, domain.KindPrize, created.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound on repeat delete, got %v", err)
	}
}

func TestCatalogService_UnknownKind(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	if _, err := svc.List(ctx, "coupon"); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := svc.Create(ctx, "coupon", &domain.CatalogEntry{Name: "X"}); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

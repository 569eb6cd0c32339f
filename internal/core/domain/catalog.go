package domain

import (
	"errors"
	"fmt"
)

// CatalogKind selects which catalog partition an operation targets.
type CatalogKind string

const (
	KindBenefit CatalogKind = "benefit"
	KindPrize   CatalogKind = "prize"
)

var ErrEntryNotFound = errors.New("catalog entry not found")
var ErrUnknownKind = errors.New("unknown catalog kind")

// IsValid reports whether the kind is one of the two known partitions.
func (k CatalogKind) IsValid() bool {
	return k == KindBenefit || k == KindPrize
}

// CatalogEntry is a benefit or prize record. The two kinds share a shape;
// which fields are meaningful (and required) depends on the kind.
type CatalogEntry struct {
	ID           string      `json:"id"`
	Kind         CatalogKind `json:"-"`
	Name         string      `json:"name,omitempty"`
	Slogan       string      `json:"slogan,omitempty"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	Validity     string      `json:"validity,omitempty"`
	Restrictions string      `json:"restrictions,omitempty"`
	Category     string      `json:"category,omitempty"`
	PointCost    int64       `json:"point_cost,omitempty"`
}

// Validate enforces the per-kind required fields: benefits need a title,
// prizes need a name and a category.
func (e *CatalogEntry) Validate(kind CatalogKind) error {
	switch kind {
	case KindBenefit:
		if e.Title == "" {
			return fmt.Errorf("%w: title is required", ErrValidation)
		}
	case KindPrize:
		if e.Name == "" {
			return fmt.Errorf("%w: name is required", ErrValidation)
		}
		if e.Category == "" {
			return fmt.Errorf("%w: category is required", ErrValidation)
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

package ports

import (
	"context"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

// ProfileUpdate carries the owner-editable profile fields for a partial
// update. Nil fields are left untouched. The card number, role, balance,
// and credential identity are never updatable through this path.
type ProfileUpdate struct {
	Name    *string
	Surname *string
	Phone   *string
	Address *string
	City    *string
	State   *string
}

// Empty reports whether the update would touch nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Surname == nil && u.Phone == nil &&
		u.Address == nil && u.City == nil && u.State == nil
}

// AccountRepository defines persistence over the two account partitions
// (customers and admins). The partition is selected by Account.Role.
type AccountRepository interface {
	// Create inserts the account into its role's partition and returns it
	// with the store-assigned ID. A unique-email violation surfaces as
	// domain.ErrDuplicateEmail. The unique index is per partition;
	// cross-partition email uniqueness is enforced by the registry.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// FindByID looks the account up in either partition.
	FindByID(ctx context.Context, id string) (*domain.Account, error)

	// FindByEmail looks the account up in either partition.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	// ListAll returns both partitions concatenated, each record tagged with
	// its role. The two partition reads are not a single snapshot; a torn
	// read across them under concurrent writes is accepted.
	ListAll(ctx context.Context) ([]*domain.Account, error)

	// UpdateProfile applies a partial update to the owner-editable fields.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.Account, error)

	// IncrementPoints atomically applies delta to the customer's balance
	// and returns the resulting value. This is the only balance mutation
	// path; it must never be implemented as read-then-write.
	IncrementPoints(ctx context.Context, id string, delta int64) (int64, error)

	// TopByPoints returns up to limit customers ordered by descending
	// balance. Tie order is implementation-defined.
	TopByPoints(ctx context.Context, limit int) ([]*domain.Account, error)
}

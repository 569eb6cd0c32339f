package ports

import (
	"context"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Role
// decides the partition and whether a card number and balance are
// assigned.
type RegisterInput struct {
	Role     string
	Name     string
	Surname  string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	Password string
}

// Session is the authenticated identity the transport layer resolves from
// a token and passes explicitly into core calls. There is no ambient
// "current user" state anywhere in the core.
type Session struct {
	AccountID string
	Role      string
	Email     string
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// RegistryService creates and looks up accounts.
type RegistryService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login returns a signed session token and the resolved account.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	ListAll(ctx context.Context) ([]*domain.Account, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.Account, error)
}

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubpuntos/loyalty-system/internal/api/metrics"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegistryService implements account registration, login, and lookup.
type RegistryService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewRegistryService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *RegistryService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &RegistryService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates an account in the partition selected by input.Role.
// Customers additionally receive a freshly generated card number and an
// explicit zero balance.
func (s *RegistryService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Role != domain.RoleCustomer && input.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	// The email is the login identity across both partitions. The store's
	// unique indexes are per partition and cannot see each other, so the
	// cross-partition check lives here.
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Role:         input.Role,
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Role == domain.RoleCustomer {
		account.CardNumber = generateCardNumber()
		account.Points = 0
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(created.Role).Inc()
	s.logger.Info().
		Str("account_id", created.ID).
		Str("role", created.Role).
		Msg("account registered")

	return created, nil
}

// Login verifies the credential and returns a signed session token bound
// to the resolved account id. Unknown email and wrong password both map
// to ErrInvalidCredentials so the response does not reveal which accounts
// exist.
func (s *RegistryService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func (s *RegistryService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAll returns both partitions for the admin console. The two reads
// are sequential; no cross-partition snapshot is guaranteed.
func (s *RegistryService) ListAll(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.ListAll(ctx)
}

// UpdateProfile applies an owner-initiated partial update. It can never
// touch the balance, card number, role, or email.
func (s *RegistryService) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.Account, error) {
	if update.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

func (s *RegistryService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"role":  account.Role,
		"email": account.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateCardNumber returns a card identifier in the DDDDD-DD format:
// a random value in 10000-99999, a hyphen, and a random value in 10-99.
// No uniqueness check is performed against existing cards.
func generateCardNumber() string {
	return fmt.Sprintf("%05d-%02d", randomInRange(10000, 99999), randomInRange(10, 99))
}

func randomInRange(min, max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		// fallback: derive from the clock
		return min + time.Now().UnixNano()%(max-min+1)
	}
	return min + n.Int64()
}

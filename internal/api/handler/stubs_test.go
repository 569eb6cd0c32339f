package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// stubRegistry is a canned ports.RegistryService. Each field holds the
// next response for its method.
type stubRegistry struct {
	account *domain.Account
	token   string
	err     error

	lastInput ports.RegisterInput
}

func (s *stubRegistry) Register(_ context.Context, input ports.RegisterInput) (*domain.Account, error) {
	s.lastInput = input
	return s.account, s.err
}

func (s *stubRegistry) Login(context.Context, string, string) (string, *domain.Account, error) {
	return s.token, s.account, s.err
}

func (s *stubRegistry) Get(context.Context, string) (*domain.Account, error) {
	return s.account, s.err
}

func (s *stubRegistry) ListAll(context.Context) ([]*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.Account{s.account}, nil
}

func (s *stubRegistry) UpdateProfile(context.Context, string, ports.ProfileUpdate) (*domain.Account, error) {
	return s.account, s.err
}

// stubLedger is a canned ports.LedgerService that records its arguments.
type stubLedger struct {
	balance int64
	top     []*domain.Account
	err     error

	adjustedAccount string
	adjustedDelta   string
	actorID         string
}

func (s *stubLedger) Balance(context.Context, string) (int64, error) {
	return s.balance, s.err
}

func (s *stubLedger) Adjust(_ context.Context, accountID, delta, actorID string) (int64, error) {
	s.adjustedAccount = accountID
	s.adjustedDelta = delta
	s.actorID = actorID
	return s.balance, s.err
}

func (s *stubLedger) TopAccounts(context.Context, int) ([]*domain.Account, error) {
	return s.top, s.err
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:         "acc-1",
		Role:       domain.RoleCustomer,
		Name:       "Ana",
		Surname:    "Lopez",
		Email:      "ana@example.com",
		CardNumber: "12345-67",
		Points:     0,
		CreatedAt:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// newTestContext builds an echo.Context with the validator wired, the way
// the router configures it.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setSession(c echo.Context, accountID, role string) {
	c.Set("account_id", accountID)
	c.Set("role", role)
	c.Set("email", "session@example.com")
}

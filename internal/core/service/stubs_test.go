package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// stubAccountRepo is an in-memory ports.AccountRepository. IncrementPoints
// applies the delta under a lock, mirroring the atomicity the real store
// provides.
type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Uniqueness only within the role's partition, mirroring the real
	// store's per-collection unique index.
	for _, existing := range r.accounts {
		if existing.Role == account.Role && existing.Email == account.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.accounts[copy.ID] = cloneAccount(copy)
	return copy, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ListAll(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

func (r *stubAccountRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&a.Name, update.Name)
	apply(&a.Surname, update.Surname)
	apply(&a.Phone, update.Phone)
	apply(&a.Address, update.Address)
	apply(&a.City, update.City)
	apply(&a.State, update.State)
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) IncrementPoints(_ context.Context, id string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	a.Points += delta
	return a.Points, nil
}

func (r *stubAccountRepo) TopByPoints(_ context.Context, limit int) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var customers []*domain.Account
	for _, a := range r.accounts {
		if a.Role == domain.RoleCustomer {
			customers = append(customers, cloneAccount(a))
		}
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Points > customers[j].Points
	})
	if len(customers) > limit {
		customers = customers[:limit]
	}
	return customers, nil
}

// wrappingAccountRepo decorates stubAccountRepo, wrapping every sentinel
// it returns the way a repository adds call-site context.
type wrappingAccountRepo struct {
	*stubAccountRepo
}

func (r *wrappingAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, err := r.stubAccountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	return a, nil
}

func (r *wrappingAccountRepo) IncrementPoints(ctx context.Context, id string, delta int64) (int64, error) {
	n, err := r.stubAccountRepo.IncrementPoints(ctx, id, delta)
	if err != nil {
		return 0, fmt.Errorf("increment points: %w", err)
	}
	return n, nil
}

// stubLeaderboardCache is an in-memory ports.LeaderboardCache.
type stubLeaderboardCache struct {
	mu      sync.Mutex
	entries map[int][]*domain.Account
}

func newStubLeaderboardCache() *stubLeaderboardCache {
	return &stubLeaderboardCache{entries: make(map[int][]*domain.Account)}
}

func (c *stubLeaderboardCache) Get(_ context.Context, limit int) ([]*domain.Account, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	accounts, ok := c.entries[limit]
	return accounts, ok, nil
}

func (c *stubLeaderboardCache) Set(_ context.Context, limit int, accounts []*domain.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[limit] = accounts
	return nil
}

func (c *stubLeaderboardCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int][]*domain.Account)
	return nil
}

func (c *stubLeaderboardCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// stubAuditSink records enqueued adjustments.
type stubAuditSink struct {
	mu      sync.Mutex
	records []domain.PointsAdjustment
}

func (s *stubAuditSink) Enqueue(adj domain.PointsAdjustment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, adj)
}

func (s *stubAuditSink) all() []domain.PointsAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PointsAdjustment, len(s.records))
	copy(out, s.records)
	return out
}

// stubCatalogRepo is an in-memory ports.CatalogRepository.
type stubCatalogRepo struct {
	mu      sync.Mutex
	entries map[domain.CatalogKind]map[string]*domain.CatalogEntry
	nextID  int
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		entries: map[domain.CatalogKind]map[string]*domain.CatalogEntry{
			domain.KindBenefit: {},
			domain.KindPrize:   {},
		},
	}
}

func cloneEntry(e *domain.CatalogEntry) *domain.CatalogEntry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubCatalogRepo) List(_ context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.CatalogEntry
	for _, e := range r.entries[kind] {
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, kind domain.CatalogKind, id string) (*domain.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[kind][id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *stubCatalogRepo) Insert(_ context.Context, kind domain.CatalogKind, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	copy := cloneEntry(entry)
	copy.ID = fmt.Sprintf("entry-%d", r.nextID)
	copy.Kind = kind
	r.entries[kind][copy.ID] = cloneEntry(copy)
	return copy, nil
}

func (r *stubCatalogRepo) Update(_ context.Context, kind domain.CatalogKind, id string, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[kind][id]; !ok {
		return nil, domain.ErrEntryNotFound
	}
	copy := cloneEntry(entry)
	copy.ID = id
	copy.Kind = kind
	r.entries[kind][id] = cloneEntry(copy)
	return copy, nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, kind domain.CatalogKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[kind][id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries[kind], id)
	return nil
}

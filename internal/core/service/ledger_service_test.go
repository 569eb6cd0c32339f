package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/clubpuntos/loyalty-system/internal/api/metrics"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

type ledgerFixture struct {
	repo   *stubAccountRepo
	cache  *stubLeaderboardCache
	audit  *stubAuditSink
	ledger *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	repo := newStubAccountRepo()
	cache := newStubLeaderboardCache()
	audit := &stubAuditSink{}
	return &ledgerFixture{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		ledger: NewLedgerService(repo, cache, audit, zerolog.Nop()),
	}
}

func (f *ledgerFixture) seedCustomer(t *testing.T, email string, points int64) *domain.Account {
	t.Helper()
	account, err := f.repo.Create(context.Background(), &domain.Account{
		Role:   domain.RoleCustomer,
		Name:   "Ana",
		Email:  email,
		Points: points,
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return account
}

func TestLedgerService_Adjust_MalformedDelta(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedCustomer(t, "ana@example.com", 25)

	for _, delta := range []string{"abc", "1.5", "", "+-3", "10 ", "0x10"} {
		if _, err := f.ledger.Adjust(context.Background(), account.ID, delta, "admin-1"); !errors.Is(err, domain.ErrInvalidDelta) {
			t.Fatalf("delta %q: expected ErrInvalidDelta, got %v", delta, err)
		}
	}

	// Rejection must leave the balance untouched.
	balance, err := f.ledger.Balance(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != 25 {
		t.Fatalf("balance changed after rejected deltas: %d", balance)
	}
	if len(f.audit.all()) != 0 {
		t.Fatalf("rejected delta must not produce audit records")
	}
}

func TestLedgerService_Adjust_AppliesDelta(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedCustomer(t, "ana@example.com", 0)
	ctx := context.Background()

	balance, err := f.ledger.Adjust(ctx, account.ID, "+50", "admin-1")
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if balance != 50 {
		t.Fatalf("expected balance 50, got %d", balance)
	}

	// Negative balances are accepted; no clamping.
	balance, err = f.ledger.Adjust(ctx, account.ID, "-80", "admin-1")
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if balance != -30 {
		t.Fatalf("expected balance -30, got %d", balance)
	}

	records := f.audit.all()
	if len(records) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(records))
	}
	if records[0].Delta != 50 || records[0].NewBalance != 50 || records[0].ActorID != "admin-1" {
		t.Fatalf("unexpected first audit record: %+v", records[0])
	}
	if records[1].Delta != -80 || records[1].NewBalance != -30 {
		t.Fatalf("unexpected second audit record: %+v", records[1])
	}
}

func TestLedgerService_Adjust_InvalidatesLeaderboardCache(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedCustomer(t, "ana@example.com", 0)
	ctx := context.Background()

	_ = f.cache.Set(ctx, 10, []*domain.Account{account})

	if _, err := f.ledger.Adjust(ctx, account.ID, "5", "admin-1"); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if f.cache.size() != 0 {
		t.Fatalf("expected cache invalidated after adjust")
	}
}

func TestLedgerService_Adjust_UnknownAccount(t *testing.T) {
	f := newLedgerFixture()

	if _, err := f.ledger.Adjust(context.Background(), "missing", "+10", "admin-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerService_Adjust_WrappedUnknownAccount(t *testing.T) {
	// A repository that wraps the sentinel must still hit the
	// account_not_found path, not the generic storage one.
	repo := &wrappingAccountRepo{newStubAccountRepo()}
	ledger := NewLedgerService(repo, newStubLeaderboardCache(), &stubAuditSink{}, zerolog.Nop())

	notFound := metrics.PointsAdjustmentErrorsTotal.WithLabelValues("account_not_found")
	storage := metrics.PointsAdjustmentErrorsTotal.WithLabelValues("storage")
	notFoundBefore := testutil.ToFloat64(notFound)
	storageBefore := testutil.ToFloat64(storage)

	if _, err := ledger.Adjust(context.Background(), "missing", "+10", "admin-1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if got := testutil.ToFloat64(notFound); got != notFoundBefore+1 {
		t.Fatalf("expected account_not_found count %v, got %v", notFoundBefore+1, got)
	}
	if got := testutil.ToFloat64(storage); got != storageBefore {
		t.Fatalf("storage error count changed: %v -> %v", storageBefore, got)
	}
}

func TestLedgerService_Adjust_ConcurrentNoLostUpdates(t *testing.T) {
	f := newLedgerFixture()
	account := f.seedCustomer(t, "ana@example.com", 0)
	ctx := context.Background()

	if _, err := f.ledger.Adjust(ctx, account.ID, "+50", "admin-1"); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}

	// Concurrent +10 and -3 must net to 57 under any interleaving.
	var wg sync.WaitGroup
	for _, delta := range []string{"+10", "-3"} {
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			if _, err := f.ledger.Adjust(ctx, account.ID, d, "admin-1"); err != nil {
				t.Errorf("Adjust(%s) failed: %v", d, err)
			}
		}(delta)
	}
	wg.Wait()

	balance, err := f.ledger.Balance(ctx, account.ID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != 57 {
		t.Fatalf("expected 57, got %d (lost update)", balance)
	}

	// Heavier interleaving: the final balance must equal the sum of all
	// deltas regardless of scheduling.
	const workers = 100
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := f.ledger.Adjust(ctx, account.ID, fmt.Sprintf("%d", n), "admin-1"); err != nil {
				t.Errorf("Adjust(%d) failed: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	want := int64(57 + workers*(workers+1)/2)
	balance, _ = f.ledger.Balance(ctx, account.ID)
	if balance != want {
		t.Fatalf("expected %d, got %d", want, balance)
	}
}

func TestLedgerService_Balance_UnknownAccount(t *testing.T) {
	f := newLedgerFixture()

	if _, err := f.ledger.Balance(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerService_TopAccounts_SortedAndBounded(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		f.seedCustomer(t, fmt.Sprintf("c%d@example.com", i), int64(i*10))
	}

	top, err := f.ledger.TopAccounts(ctx, 5)
	if err != nil {
		t.Fatalf("TopAccounts failed: %v", err)
	}
	if len(top) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Points < top[i].Points {
			t.Fatalf("entries not in descending order: %d before %d", top[i-1].Points, top[i].Points)
		}
	}
	if top[0].Points != 110 {
		t.Fatalf("expected leader with 110 points, got %d", top[0].Points)
	}
}

func TestLedgerService_TopAccounts_DefaultLimit(t *testing.T) {
	f := newLedgerFixture()

	for i := 0; i < 15; i++ {
		f.seedCustomer(t, fmt.Sprintf("c%d@example.com", i), int64(i))
	}

	top, err := f.ledger.TopAccounts(context.Background(), 0)
	if err != nil {
		t.Fatalf("TopAccounts failed: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected default limit of 10, got %d", len(top))
	}
}

func TestLedgerService_TopAccounts_ServedFromCache(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	sentinel := []*domain.Account{{ID: "cached", Name: "Cached", Points: 999}}
	_ = f.cache.Set(ctx, 3, sentinel)

	f.seedCustomer(t, "fresh@example.com", 5)

	top, err := f.ledger.TopAccounts(ctx, 3)
	if err != nil {
		t.Fatalf("TopAccounts failed: %v", err)
	}
	if len(top) != 1 || top[0].ID != "cached" {
		t.Fatalf("expected cached result, got %+v", top)
	}
}

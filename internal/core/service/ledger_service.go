package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubpuntos/loyalty-system/internal/api/metrics"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

var deltaPattern = regexp.MustCompile(`^[-+]?\d+$`)

// LedgerService owns balance reads and the single balance-mutation path.
type LedgerService struct {
	accounts ports.AccountRepository
	cache    ports.LeaderboardCache
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewLedgerService(
	accounts ports.AccountRepository,
	cache ports.LeaderboardCache,
	audit ports.AuditSink,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{accounts: accounts, cache: cache, audit: audit, log: log}
}

// Balance returns the account's current balance. Customer documents
// predating the points field decode as zero.
func (s *LedgerService) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Points, nil
}

// Adjust applies a textual signed-integer delta to the balance.
func (s *LedgerService) Adjust(ctx context.Context, accountID, delta, actorID string) (int64, error) {
	// 1. Reject malformed input before any storage round trip.
	if !deltaPattern.MatchString(delta) {
		metrics.PointsAdjustmentErrorsTotal.WithLabelValues("invalid_delta").Inc()
		return 0, domain.ErrInvalidDelta
	}
	n, err := strconv.ParseInt(delta, 10, 64)
	if err != nil {
		metrics.PointsAdjustmentErrorsTotal.WithLabelValues("invalid_delta").Inc()
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidDelta, delta)
	}

	// 2. Single atomic read-modify-write at the storage layer. Never a
	// read-then-write across two round trips: that loses updates under
	// concurrent writers.
	newBalance, err := s.accounts.IncrementPoints(ctx, accountID, n)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.PointsAdjustmentErrorsTotal.WithLabelValues("account_not_found").Inc()
		} else {
			metrics.PointsAdjustmentErrorsTotal.WithLabelValues("storage").Inc()
		}
		return 0, err
	}

	metrics.PointsAdjustmentsTotal.WithLabelValues(direction(n)).Inc()

	// 3. Drop stale leaderboard entries. A failed invalidation only means
	// a stale read within the cache TTL.
	if invErr := s.cache.Invalidate(ctx); invErr != nil {
		s.log.Warn().Err(invErr).Msg("leaderboard cache invalidation failed")
	}

	// 4. Audit trail, asynchronous and non-fatal.
	s.audit.Enqueue(domain.PointsAdjustment{
		AccountID:  accountID,
		Delta:      n,
		NewBalance: newBalance,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
	})

	s.log.Info().
		Str("account_id", accountID).
		Str("actor_id", actorID).
		Int64("delta", n).
		Int64("new_balance", newBalance).
		Msg("points adjusted")

	return newBalance, nil
}

// TopAccounts returns up to limit customers, descending by points. The
// redis cache is consulted first; any cache failure degrades to a direct
// store read.
func (s *LedgerService) TopAccounts(ctx context.Context, limit int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	cached, ok, err := s.cache.Get(ctx, limit)
	if err != nil {
		s.log.Warn().Err(err).Msg("leaderboard cache read failed")
	} else if ok {
		metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()

	accounts, err := s.accounts.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, limit, accounts); setErr != nil {
		s.log.Warn().Err(setErr).Msg("leaderboard cache write failed")
	}

	return accounts, nil
}

func direction(delta int64) string {
	if delta < 0 {
		return "debit"
	}
	return "credit"
}

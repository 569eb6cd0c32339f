package ports

import (
	"context"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

// LedgerService owns point-balance semantics. Adjust is the single
// mutation path for balances.
type LedgerService interface {
	// Balance returns the current balance. A customer document without a
	// points field reads as zero.
	Balance(ctx context.Context, accountID string) (int64, error)

	// Adjust applies a signed integer delta (textual form, [-+]?digits) to
	// the account's balance and returns the new value. Malformed deltas
	// are rejected before any storage round trip. Balances may go
	// negative; no clamping is applied.
	Adjust(ctx context.Context, accountID, delta, actorID string) (int64, error)

	// TopAccounts returns up to limit customers, descending by points.
	TopAccounts(ctx context.Context, limit int) ([]*domain.Account, error)
}

// AuditRepository persists balance-mutation audit records.
type AuditRepository interface {
	Insert(ctx context.Context, adj *domain.PointsAdjustment) error
}

// AuditSink receives audit records for asynchronous persistence. Sinks
// must never fail the adjustment that produced the record.
type AuditSink interface {
	Enqueue(adj domain.PointsAdjustment)
}

// LeaderboardCache is a read-through cache for TopAccounts results.
type LeaderboardCache interface {
	// Get returns the cached entries for limit and whether the key was
	// present.
	Get(ctx context.Context, limit int) ([]*domain.Account, bool, error)
	Set(ctx context.Context, limit int, accounts []*domain.Account) error
	// Invalidate drops all cached leaderboard entries.
	Invalidate(ctx context.Context) error
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clubpuntos/loyalty-system/internal/api/metrics"
	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes points-audit records to a fixed set of workers using
// consistent hashing on the account id, so the audit trail for any single
// account is written in adjustment order.
type Dispatcher struct {
	workers []chan domain.PointsAdjustment
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.PointsAdjustment, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PointsAdjustment, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an audit record to the worker responsible for its
// account. Blocks only once the worker's buffer is full.
func (d *Dispatcher) Enqueue(adj domain.PointsAdjustment) {
	idx := d.shardIndex(adj.AccountID)
	d.workers[idx] <- adj
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PointsAdjustment) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case adj, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, &adj); err != nil {
				metrics.AuditWriteErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("account_id", adj.AccountID).
					Int("worker_id", id).
					Msg("audit insert failed")
			}
		}
	}
}

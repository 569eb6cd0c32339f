package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

const auditCollection = "points_audit"

// AuditRepository persists balance-adjustment audit records.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert appends one audit record. Audit writes happen off the request
// path; callers treat failures as non-fatal.
func (r *AuditRepository) Insert(ctx context.Context, adj *domain.PointsAdjustment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"account_id":  adj.AccountID,
		"delta":       adj.Delta,
		"new_balance": adj.NewBalance,
		"actor_id":    adj.ActorID,
		"timestamp":   adj.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

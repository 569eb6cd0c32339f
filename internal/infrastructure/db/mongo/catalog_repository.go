package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

const (
	benefitsCollection = "benefits"
	prizesCollection   = "prizes"
)

// CatalogRepository implements ports.CatalogRepository with one
// collection per entry kind.
type CatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type mongoEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name,omitempty"`
	Slogan       string             `bson:"slogan,omitempty"`
	Title        string             `bson:"title,omitempty"`
	Description  string             `bson:"description,omitempty"`
	Validity     string             `bson:"validity,omitempty"`
	Restrictions string             `bson:"restrictions,omitempty"`
	Category     string             `bson:"category,omitempty"`
	PointCost    int64              `bson:"point_cost,omitempty"`
}

func (r *CatalogRepository) collection(kind domain.CatalogKind) *mongo.Collection {
	if kind == domain.KindPrize {
		return r.db.Collection(prizesCollection)
	}
	return r.db.Collection(benefitsCollection)
}

func (r *CatalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.collection(kind).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer cur.Close(ctx)

	var out []*domain.CatalogEntry
	for cur.Next(ctx) {
		var me mongoEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = append(out, entryToDomain(&me, kind))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, kind domain.CatalogKind, id string) (*domain.CatalogEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEntry
	if err := r.collection(kind).FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return entryToDomain(&me, kind), nil
}

func (r *CatalogRepository) Insert(ctx context.Context, kind domain.CatalogKind, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection(kind).InsertOne(ctx, entryToDoc(entry))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}

	created := *entry
	created.Kind = kind
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CatalogRepository) Update(ctx context.Context, kind domain.CatalogKind, id string, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": entryToDoc(entry)}

	var me mongoEntry
	if err := r.collection(kind).FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}
	return entryToDomain(&me, kind), nil
}

func (r *CatalogRepository) Delete(ctx context.Context, kind domain.CatalogKind, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// entryToDoc always carries every field so that an update's $set clears
// whatever the caller left empty.
func entryToDoc(entry *domain.CatalogEntry) bson.M {
	return bson.M{
		"name":         entry.Name,
		"slogan":       entry.Slogan,
		"title":        entry.Title,
		"description":  entry.Description,
		"validity":     entry.Validity,
		"restrictions": entry.Restrictions,
		"category":     entry.Category,
		"point_cost":   entry.PointCost,
	}
}

func entryToDomain(me *mongoEntry, kind domain.CatalogKind) *domain.CatalogEntry {
	return &domain.CatalogEntry{
		ID:           me.ID.Hex(),
		Kind:         kind,
		Name:         me.Name,
		Slogan:       me.Slogan,
		Title:        me.Title,
		Description:  me.Description,
		Validity:     me.Validity,
		Restrictions: me.Restrictions,
		Category:     me.Category,
		PointCost:    me.PointCost,
	}
}

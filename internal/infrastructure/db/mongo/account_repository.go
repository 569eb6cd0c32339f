package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

const (
	customersCollection = "customers"
	adminsCollection    = "admins"
)

// AccountRepository implements ports.AccountRepository over the two
// account partitions. Customers and admins live in separate collections,
// mirroring the original deployment's data layout.
type AccountRepository struct {
	customers *mongo.Collection
	admins    *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		customers: db.Collection(customersCollection),
		admins:    db.Collection(adminsCollection),
	}
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Surname      string             `bson:"surname,omitempty"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	Address      string             `bson:"address,omitempty"`
	City         string             `bson:"city,omitempty"`
	State        string             `bson:"state,omitempty"`
	CardNumber   string             `bson:"card_number,omitempty"`
	Points       int64              `bson:"points"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *AccountRepository) collection(role string) *mongo.Collection {
	if role == domain.RoleAdmin {
		return r.admins
	}
	return r.customers
}

// Create inserts the account into its role's partition. A unique-index
// violation on email maps to ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Name:         account.Name,
		Surname:      account.Surname,
		Email:        account.Email,
		Phone:        account.Phone,
		Address:      account.Address,
		City:         account.City,
		State:        account.State,
		CardNumber:   account.CardNumber,
		Points:       account.Points,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	res, err := r.collection(account.Role).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID looks the id up in the customer partition first, then admins.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var ma mongoAccount
	err := r.customers.FindOne(ctx, filter).Decode(&ma)
	if err == nil {
		return toDomain(&ma, domain.RoleCustomer), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find account: %w", err)
	}

	err = r.admins.FindOne(ctx, filter).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&ma, domain.RoleAdmin), nil
}

// ListAll reads both partitions sequentially and tags each record with
// its role. The reads are not a single snapshot.
func (r *AccountRepository) ListAll(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	customers, err := r.listPartition(ctx, r.customers, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	admins, err := r.listPartition(ctx, r.admins, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return append(customers, admins...), nil
}

func (r *AccountRepository) listPartition(ctx context.Context, coll *mongo.Collection, role string) ([]*domain.Account, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	var out []*domain.Account
	for cur.Next(ctx) {
		var ma mongoAccount
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
		}
		out = append(out, toDomain(&ma, role))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	return out, nil
}

// UpdateProfile applies a $set built from the non-nil fields. Tried
// against the customer partition first, then admins.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	setField(set, "name", update.Name)
	setField(set, "surname", update.Surname)
	setField(set, "phone", update.Phone)
	setField(set, "address", update.Address)
	setField(set, "city", update.City)
	setField(set, "state", update.State)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": oid}
	mutation := bson.M{"$set": set}

	var ma mongoAccount
	err = r.customers.FindOneAndUpdate(ctx, filter, mutation, opts).Decode(&ma)
	if err == nil {
		return toDomain(&ma, domain.RoleCustomer), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	err = r.admins.FindOneAndUpdate(ctx, filter, mutation, opts).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return toDomain(&ma, domain.RoleAdmin), nil
}

// IncrementPoints applies the delta with a single $inc and returns the
// post-update balance. The read-modify-write happens inside the store, so
// concurrent adjustments on the same account never lose updates.
func (r *AccountRepository) IncrementPoints(ctx context.Context, id string, delta int64) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updated_at": time.Now().UTC().Unix()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAccount
	if err := r.customers.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("increment points: %w", err)
	}
	return ma.Points, nil
}

// TopByPoints returns up to limit customers sorted by descending balance.
func (r *AccountRepository) TopByPoints(ctx context.Context, limit int) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.customers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("top accounts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Account
	for cur.Next(ctx) {
		var ma mongoAccount
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode top account: %w", err)
		}
		out = append(out, toDomain(&ma, domain.RoleCustomer))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("top accounts: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the unique email index on both partitions. No
// index is placed on card_number: the generator performs no uniqueness
// check and a unique index would turn the known collision risk into
// registration failures.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := r.customers.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("customers index: %w", err)
	}
	if _, err := r.admins.Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("admins index: %w", err)
	}
	return nil
}

func setField(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func toDomain(ma *mongoAccount, role string) *domain.Account {
	return &domain.Account{
		ID:           ma.ID.Hex(),
		Role:         role,
		Name:         ma.Name,
		Surname:      ma.Surname,
		Email:        ma.Email,
		Phone:        ma.Phone,
		Address:      ma.Address,
		City:         ma.City,
		State:        ma.State,
		CardNumber:   ma.CardNumber,
		Points:       ma.Points,
		PasswordHash: ma.PasswordHash,
		CreatedAt:    unixToTime(ma.CreatedAt),
		UpdatedAt:    unixToTime(ma.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

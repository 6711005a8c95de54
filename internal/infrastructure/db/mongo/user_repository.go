package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), seq: newSequence(db, collectionUsers)}
}

type userDoc struct {
	ID            int64                `bson:"_id"`
	Username      string               `bson:"username"`
	PasswordHash  string               `bson:"password_hash"`
	Role          string               `bson:"role"`
	VendorName    string               `bson:"vendor_name,omitempty"`
	VendorRevenue primitive.Decimal128 `bson:"vendor_revenue"`
	CreatedAt     time.Time            `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	revenue, err := toDecimal128(user.VendorRevenue)
	if err != nil {
		return nil, err
	}
	id, err := r.seq.next(ctx, 1)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:            id,
		Username:      user.Username,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role,
		VendorName:    user.VendorName,
		VendorRevenue: revenue,
		CreatedAt:     user.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return doc.toDomain()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// CreditRevenue adds amount to the vendor's revenue with a server-side $inc.
func (r *UserRepository) CreditRevenue(ctx context.Context, vendorID int64, amount decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	inc, err := toDecimal128(amount)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": vendorID, "role": domain.RoleVendor},
		bson.M{"$inc": bson.M{"vendor_revenue": inc}},
	)
	if err != nil {
		return fmt.Errorf("credit revenue: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// EnsureIndexes enforces username uniqueness.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain()
}

func (d userDoc) toDomain() (*domain.User, error) {
	revenue, err := fromDecimal128(d.VendorRevenue)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:            d.ID,
		Username:      d.Username,
		PasswordHash:  d.PasswordHash,
		Role:          d.Role,
		VendorName:    d.VendorName,
		VendorRevenue: revenue,
		CreatedAt:     d.CreatedAt,
	}, nil
}

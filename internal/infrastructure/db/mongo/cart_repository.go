package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teakmarket/marketplace-api/internal/core/domain"
)

const collectionCartLines = "cart_lines"

type CartRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCartLines), seq: newSequence(db, collectionCartLines)}
}

type cartLineDoc struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	ProductID int64     `bson:"product_id"`
	Quantity  int       `bson:"quantity"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *CartRepository) Add(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, 1)
	if err != nil {
		return nil, err
	}
	doc := cartLineDoc{
		ID:        id,
		UserID:    line.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		CreatedAt: line.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert cart line: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns lines in insertion order; ids are monotonic.
func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	var docs []cartLineDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	out := make([]*domain.CartLine, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, lineID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": lineID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

// RemoveMany deletes exactly lineIDs. A short count means another writer got
// there first and the caller's transaction must abort.
func (r *CartRepository) RemoveMany(ctx context.Context, userID int64, lineIDs []int64) error {
	if len(lineIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID, "_id": bson.M{"$in": lineIDs}})
	if err != nil {
		return fmt.Errorf("drain cart: %w", err)
	}
	if res.DeletedCount != int64(len(lineIDs)) {
		return domain.ErrCartChanged
	}
	return nil
}

func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}}})
	return err
}

func (d cartLineDoc) toDomain() *domain.CartLine {
	return &domain.CartLine{
		ID:        d.ID,
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
	}
}

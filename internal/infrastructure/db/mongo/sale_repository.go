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

	"github.com/teakmarket/marketplace-api/internal/core/domain"
	"github.com/teakmarket/marketplace-api/internal/core/ports"
)

const collectionSales = "sales"

type SaleRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{col: db.Collection(collectionSales), seq: newSequence(db, collectionSales)}
}

type saleDoc struct {
	ID           int64                `bson:"_id"`
	VendorID     int64                `bson:"vendor_id"`
	VendorName   string               `bson:"vendor_name"`
	CustomerID   int64                `bson:"customer_id"`
	CustomerName string               `bson:"customer_name"`
	ProductID    int64                `bson:"product_id"`
	ProductName  string               `bson:"product_name"`
	Quantity     int                  `bson:"quantity"`
	TotalPrice   primitive.Decimal128 `bson:"total_price"`
	Status       string               `bson:"status"`
	CreatedAt    time.Time            `bson:"created_at"`
	ShippedAt    *time.Time           `bson:"shipped_at,omitempty"`
}

// CreateMany reserves a block of ids and inserts all sales in one call.
// IDs are written back onto the given sales.
func (r *SaleRepository) CreateMany(ctx context.Context, sales []*domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	first, err := r.seq.next(ctx, len(sales))
	if err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(sales))
	for i, s := range sales {
		doc, err := toSaleDoc(s)
		if err != nil {
			return err
		}
		doc.ID = first + int64(i)
		docs = append(docs, doc)
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert sales: %w", err)
	}
	for i, s := range sales {
		s.ID = first + int64(i)
	}
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id int64) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc saleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return doc.toDomain()
}

func (r *SaleRepository) List(ctx context.Context, filter ports.SaleFilter) ([]*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.VendorID != 0 {
		q["vendor_id"] = filter.VendorID
	}
	if filter.CustomerID != 0 {
		q["customer_id"] = filter.CustomerID
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var docs []saleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	out := make([]*domain.Sale, 0, len(docs))
	for _, d := range docs {
		s, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MarkShipped flips the status only if it is still Processing, so the
// transition happens at most once even under concurrent requests.
func (r *SaleRepository) MarkShipped(ctx context.Context, id int64, at time.Time) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc saleDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": string(domain.SaleProcessing)},
		bson.M{"$set": bson.M{"status": string(domain.SaleShipped), "shipped_at": at.UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("ship sale: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("ship sale: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrSaleNotFound
	}
	return nil, domain.ErrAlreadyShipped
}

// EnsureIndexes creates necessary indexes on the sales collection.
func (r *SaleRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "_id", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toSaleDoc(s *domain.Sale) (saleDoc, error) {
	total, err := toDecimal128(s.TotalPrice)
	if err != nil {
		return saleDoc{}, err
	}
	return saleDoc{
		ID:           s.ID,
		VendorID:     s.VendorID,
		VendorName:   s.VendorName,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		ProductID:    s.ProductID,
		ProductName:  s.ProductName,
		Quantity:     s.Quantity,
		TotalPrice:   total,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt.UTC(),
		ShippedAt:    s.ShippedAt,
	}, nil
}

func (d saleDoc) toDomain() (*domain.Sale, error) {
	total, err := fromDecimal128(d.TotalPrice)
	if err != nil {
		return nil, err
	}
	return &domain.Sale{
		ID:           d.ID,
		VendorID:     d.VendorID,
		VendorName:   d.VendorName,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		ProductID:    d.ProductID,
		ProductName:  d.ProductName,
		Quantity:     d.Quantity,
		TotalPrice:   total,
		Status:       domain.SaleStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		ShippedAt:    d.ShippedAt,
	}, nil
}

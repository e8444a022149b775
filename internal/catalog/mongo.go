package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

const (
	vendorPricesCollection = "vendor_prices"
	mongoTimeout           = 5 * time.Second
)

type vendorPriceDoc struct {
	ProductID       string    `bson:"product_id"`
	VendorID        string    `bson:"vendor_id"`
	VendorName      string    `bson:"vendor_name"`
	Price           float64   `bson:"price"`
	Currency        string    `bson:"currency"`
	DeliveryTime    string    `bson:"delivery_time"`
	MinimumQuantity int       `bson:"minimum_quantity"`
	ValidUntil      time.Time `bson:"valid_until"`
	CreatedAt       time.Time `bson:"created_at"`
}

// MongoQuoteSource keeps vendor quotes as denormalized documents, one per quote.
type MongoQuoteSource struct {
	coll *mongo.Collection
}

// NewMongoQuoteSource returns a QuoteSource over the vendor_prices collection of dbName.
func NewMongoQuoteSource(client *mongo.Client, dbName string) *MongoQuoteSource {
	return &MongoQuoteSource{
		coll: client.Database(dbName).Collection(vendorPricesCollection),
	}
}

// EnsureIndexes creates the product lookup index.
func (s *MongoQuoteSource) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create vendor_prices index: %w", err)
	}
	return nil
}

// AddQuote stores q, including the vendor name, under productID.
func (s *MongoQuoteSource) AddQuote(ctx context.Context, productID string, q pricing.VendorQuote) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, vendorPriceDoc{
		ProductID:       productID,
		VendorID:        q.VendorID,
		VendorName:      q.VendorName,
		Price:           q.Price,
		Currency:        q.Currency,
		DeliveryTime:    q.DeliveryTime,
		MinimumQuantity: q.MinimumQuantity,
		ValidUntil:      q.ValidUntil.UTC(),
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert vendor price: %w", err)
	}
	return nil
}

// ProductQuotes returns the quotes for productID oldest first.
func (s *MongoQuoteSource) ProductQuotes(ctx context.Context, productID string) ([]pricing.VendorQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find vendor prices: %w", err)
	}
	defer cur.Close(ctx)

	quotes := make([]pricing.VendorQuote, 0)
	for cur.Next(ctx) {
		var doc vendorPriceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode vendor price: %w", err)
		}
		quotes = append(quotes, pricing.VendorQuote{
			VendorID:        doc.VendorID,
			VendorName:      doc.VendorName,
			Price:           doc.Price,
			Currency:        doc.Currency,
			DeliveryTime:    doc.DeliveryTime,
			MinimumQuantity: doc.MinimumQuantity,
			ValidUntil:      doc.ValidUntil,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendor prices: %w", err)
	}

	return quotes, nil
}

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

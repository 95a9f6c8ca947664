package basket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sokol111/ecommerce-basket-service/internal/persistence/mongo"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "baskets"

// Repository persists shopping carts. All methods participate in an ambient
// transaction when the context carries a mongo session.
type Repository interface {
	// GetBasket returns the cart for the user. Can return ErrBasketNotFound.
	GetBasket(ctx context.Context, userName string) (*ShoppingCart, error)

	// CreateBasket inserts a new cart. Can return ErrBasketAlreadyExists.
	CreateBasket(ctx context.Context, cart *ShoppingCart) error

	// SaveBasket replaces the stored cart with the given state.
	SaveBasket(ctx context.Context, cart *ShoppingCart) error

	// DeleteBasket removes the user's cart. Can return ErrBasketNotFound.
	DeleteBasket(ctx context.Context, userName string) error

	// UpdateItemPrice sets a new price on every matching line item across
	// all carts and returns the number of carts touched.
	UpdateItemPrice(ctx context.Context, productID string, price float64) (int64, error)
}

type repository struct {
	coll *mongodriver.Collection
}

// NewRepository creates a mongo-backed basket repository.
func NewRepository(m mongo.Mongo) Repository {
	return &repository{
		coll: m.GetCollection(collectionName),
	}
}

func (r *repository) GetBasket(ctx context.Context, userName string) (*ShoppingCart, error) {
	var cart ShoppingCart
	err := r.coll.FindOne(ctx, bson.M{"userName": userName}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to get basket for user %s: %w", userName, ErrBasketNotFound)
		}
		return nil, fmt.Errorf("failed to get basket for user %s: %w", userName, err)
	}
	return &cart, nil
}

func (r *repository) CreateBasket(ctx context.Context, cart *ShoppingCart) error {
	_, err := r.coll.InsertOne(ctx, cart)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create basket for user %s: %w", cart.UserName, ErrBasketAlreadyExists)
		}
		return fmt.Errorf("failed to create basket for user %s: %w", cart.UserName, err)
	}
	return nil
}

func (r *repository) SaveBasket(ctx context.Context, cart *ShoppingCart) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		return fmt.Errorf("failed to save basket for user %s: %w", cart.UserName, err)
	}
	return nil
}

func (r *repository) DeleteBasket(ctx context.Context, userName string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"userName": userName})
	if err != nil {
		return fmt.Errorf("failed to delete basket for user %s: %w", userName, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete basket for user %s: %w", userName, ErrBasketNotFound)
	}
	return nil
}

func (r *repository) UpdateItemPrice(ctx context.Context, productID string, price float64) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"items.productId": productID},
		bson.M{"$set": bson.M{"items.$[elem].price": price}},
		options.UpdateMany().SetArrayFilters([]any{bson.M{"elem.productId": productID}}))
	if err != nil {
		return 0, fmt.Errorf("failed to update item price for product %s: %w", productID, err)
	}
	return result.ModifiedCount, nil
}

// EnsureIndexes creates required indexes for the baskets collection.
// This is idempotent - safe to call multiple times.
func EnsureIndexes(ctx context.Context, m mongo.Mongo) error {
	coll := m.GetCollection(collectionName)

	indexes := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "userName", Value: 1}},
			Options: options.Index().SetName("baskets_userName").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "items.productId", Value: 1}},
			Options: options.Index().SetName("baskets_items_productId"),
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

package basket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sokol111/ecommerce-basket-service/internal/events"
	"github.com/Sokol111/ecommerce-basket-service/internal/outbox"
	"github.com/Sokol111/ecommerce-basket-service/internal/persistence"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service exposes the basket use cases.
type Service interface {
	CreateBasket(ctx context.Context, cart *ShoppingCart) (string, error)
	GetBasket(ctx context.Context, userName string) (*ShoppingCart, error)
	AddItem(ctx context.Context, userName string, item ShoppingCartItem) error
	RemoveItem(ctx context.Context, userName string, productID string) error
	UpdateItemPrice(ctx context.Context, productID string, price float64) error

	// Checkout removes the user's basket and records a BasketCheckout
	// integration event in the outbox, both in one transaction.
	Checkout(ctx context.Context, userName string) error
}

type service struct {
	baskets Repository
	outbox  outbox.Store
	tx      persistence.TxManager
	source  string
	log     *zap.Logger
}

func NewService(baskets Repository, outboxStore outbox.Store, tx persistence.TxManager, source string, log *zap.Logger) Service {
	return &service{
		baskets: baskets,
		outbox:  outboxStore,
		tx:      tx,
		source:  source,
		log:     log.With(zap.String("component", "basket-service")),
	}
}

func (s *service) CreateBasket(ctx context.Context, cart *ShoppingCart) (string, error) {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	if err := s.baskets.CreateBasket(ctx, cart); err != nil {
		return "", err
	}
	s.log.Debug("basket created", zap.String("userName", cart.UserName))
	return cart.ID, nil
}

func (s *service) GetBasket(ctx context.Context, userName string) (*ShoppingCart, error) {
	return s.baskets.GetBasket(ctx, userName)
}

func (s *service) AddItem(ctx context.Context, userName string, item ShoppingCartItem) error {
	cart, err := s.baskets.GetBasket(ctx, userName)
	if err != nil {
		return err
	}
	cart.AddItem(item)
	return s.baskets.SaveBasket(ctx, cart)
}

func (s *service) RemoveItem(ctx context.Context, userName string, productID string) error {
	cart, err := s.baskets.GetBasket(ctx, userName)
	if err != nil {
		return err
	}
	if !cart.RemoveItem(productID) {
		return fmt.Errorf("failed to remove product %s for user %s: %w", productID, userName, ErrItemNotFound)
	}
	return s.baskets.SaveBasket(ctx, cart)
}

func (s *service) UpdateItemPrice(ctx context.Context, productID string, price float64) error {
	modified, err := s.baskets.UpdateItemPrice(ctx, productID, price)
	if err != nil {
		return err
	}
	s.log.Info("item price updated",
		zap.String("productId", productID),
		zap.Float64("price", price),
		zap.Int64("basketsModified", modified))
	return nil
}

// Checkout is the transactional writer of the outbox pattern. The basket
// deletion and the intent to publish commit atomically; the transport is
// never called here. The event payload is a snapshot of the basket taken
// before the deletion, so the relay does not depend on state that no
// longer exists.
func (s *service) Checkout(ctx context.Context, userName string) error {
	_, err := s.tx.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		cart, err := s.baskets.GetBasket(txCtx, userName)
		if err != nil {
			return nil, err
		}

		evt := s.newCheckoutEvent(cart)
		payload, err := json.Marshal(evt)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize checkout event: %w", err)
		}

		msg := outbox.NewMessage(txCtx, evt.Metadata.EventID, evt.GetEventType(), payload)
		if err := s.outbox.Insert(txCtx, msg); err != nil {
			return nil, err
		}

		if err := s.baskets.DeleteBasket(txCtx, userName); err != nil {
			return nil, err
		}

		return nil, nil
	})
	if err != nil {
		return err
	}

	s.log.Info("basket checked out", zap.String("userName", userName))
	return nil
}

func (s *service) newCheckoutEvent(cart *ShoppingCart) *events.BasketCheckout {
	return &events.BasketCheckout{
		Metadata:   events.NewMetadata(events.TypeBasketCheckout, s.source),
		UserName:   cart.UserName,
		TotalPrice: cart.TotalPrice(),
		Items: lo.Map(cart.Items, func(item ShoppingCartItem, _ int) events.BasketCheckoutItem {
			return events.BasketCheckoutItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Color:       item.Color,
				Price:       item.Price,
			}
		}),
	}
}

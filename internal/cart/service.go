// Package cart holds per-user shopping carts. The workflow lives in Service
// over a Store interface so the cart rules are testable without postgres; the
// live catalog is only ever consulted through the Catalog interface.
package cart

import (
	"context"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// Store is the cart persistence surface, implemented by the postgres Conf.
type Store interface {
	CartByUser(ctx context.Context, userID int) (Cart, bool, error)
	CreateCart(ctx context.Context, userID int) (Cart, error)
	ItemByCartProductSize(ctx context.Context, cartID int, productID string, size string) (CartItem, bool, error)
	InsertItem(ctx context.Context, cartID int, item CartItem) (CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int, quantity int) error
	DeleteItem(ctx context.Context, itemID int) error
	DeleteCart(ctx context.Context, cartID int) error
}

// Catalog is the slice of the product service the cart needs: live stock.
type Catalog interface {
	Quantity(ctx context.Context, productID string) (int, error)
}

type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

func (s *Service) cartForUser(ctx context.Context, userID int) (Cart, error) {
	cart, found, err := s.store.CartByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	if found {
		return cart, nil
	}
	return s.store.CreateCart(ctx, userID)
}

// AddToCart adds quantity of a product+size line, merging into an existing
// line. The requested increment is checked against live catalog stock; nothing
// is reserved, so the check can go stale before checkout.
func (s *Service) AddToCart(ctx context.Context, userID int, body CartItemBody) error {
	cart, err := s.cartForUser(ctx, userID)
	if err != nil {
		return err
	}

	existing, found, err := s.store.ItemByCartProductSize(ctx, cart.ID, body.ProductID, body.Size)
	if err != nil {
		return err
	}

	available, err := s.catalog.Quantity(ctx, body.ProductID)
	if err != nil {
		return err
	}
	if available < body.Quantity {
		return apperr.New(apperr.InsufficientStock, "Product has limited stock")
	}

	if found {
		return s.store.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+body.Quantity)
	}

	_, err = s.store.InsertItem(ctx, cart.ID, CartItem{
		ProductID: body.ProductID,
		Size:      body.Size,
		Quantity:  body.Quantity,
	})
	return err
}

// FetchCart returns the user's cart, creating an empty one on first fetch.
func (s *Service) FetchCart(ctx context.Context, userID int) (Cart, error) {
	return s.cartForUser(ctx, userID)
}

// RemoveFromCart decreases a line by quantity. Reaching exactly zero deletes
// the line; removing more than is present fails without touching it.
func (s *Service) RemoveFromCart(ctx context.Context, userID int, body CartItemBody) error {
	if body.Quantity < 1 {
		return apperr.New(apperr.InvalidInput, "Quantity should not be less than 1")
	}

	cart, err := s.cartForUser(ctx, userID)
	if err != nil {
		return err
	}

	existing, found, err := s.store.ItemByCartProductSize(ctx, cart.ID, body.ProductID, body.Size)
	if err != nil {
		return err
	}
	if !found || existing.Quantity < body.Quantity {
		return apperr.New(apperr.InvalidInput, "Cannot decrease quantity")
	}

	newQuantity := existing.Quantity - body.Quantity
	if newQuantity == 0 {
		return s.store.DeleteItem(ctx, existing.ID)
	}
	return s.store.UpdateItemQuantity(ctx, existing.ID, newQuantity)
}

// ClearCart deletes the cart with its lines and immediately recreates an empty
// one.
func (s *Service) ClearCart(ctx context.Context, userID int) error {
	cart, found, err := s.store.CartByUser(ctx, userID)
	if err != nil {
		return err
	}
	if found {
		if err := s.store.DeleteCart(ctx, cart.ID); err != nil {
			return err
		}
	}
	_, err = s.store.CreateCart(ctx, userID)
	return err
}

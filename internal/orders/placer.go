// Package orders places and serves orders. Placing is an orchestration over
// the user and product services; both are reached only through the
// UserDirectory and Catalog interfaces, so the workflow is testable with
// fakes and the siblings stay black boxes.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shikhasoumya1612/ecommerce/internal/remote"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// Store is the order persistence surface, implemented by the postgres Conf.
type Store interface {
	InsertOrder(ctx context.Context, order Order) (Order, error)
	DeleteOrder(ctx context.Context, orderID int) error
	InsertItem(ctx context.Context, orderID int, item OrderItem) (OrderItem, error)
	SetTotalPrice(ctx context.Context, orderID int, totalPrice float64) error
	OrdersByUser(ctx context.Context, userID int) ([]Order, error)
	OrderByID(ctx context.Context, orderID int) (Order, bool, error)
}

// UserDirectory serves the snapshot strings stored on an order.
type UserDirectory interface {
	AddressDetails(ctx context.Context, addressID int) (string, error)
	PaymentDetails(ctx context.Context, paymentMethodID int) (string, error)
}

// Catalog serves product details for pricing and takes the stock decrement.
type Catalog interface {
	DetailsForOrder(ctx context.Context, productID string) (remote.ProductDetails, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
}

type Placer struct {
	store   Store
	users   UserDirectory
	catalog Catalog
}

func NewPlacer(store Store, users UserDirectory, catalog Catalog) *Placer {
	return &Placer{store: store, users: users, catalog: catalog}
}

// PlaceOrder runs the order workflow: snapshot strings first, then a
// placeholder order row, then one pass over the items checking stock, copying
// product details, and decrementing stock synchronously. Any failure inside
// the item loop deletes the order row and fails the request; stock already
// taken by earlier items is not restored.
func (p *Placer) PlaceOrder(ctx context.Context, userID int, req OrderRequest) (Order, error) {
	if req.AddressID == 0 {
		return Order{}, apperr.New(apperr.InvalidInput, "Address id field cannot be empty")
	}
	if req.PaymentMethodID == 0 {
		return Order{}, apperr.New(apperr.InvalidInput, "Payment method id field cannot be empty")
	}

	addressDetails, err := p.users.AddressDetails(ctx, req.AddressID)
	if err != nil {
		return Order{}, err
	}
	paymentDetails, err := p.users.PaymentDetails(ctx, req.PaymentMethodID)
	if err != nil {
		return Order{}, err
	}

	order, err := p.store.InsertOrder(ctx, Order{
		UserID:         userID,
		TotalPrice:     0.01,
		OrderDate:      time.Now().UTC(),
		OrderStatus:    StatusPlaced,
		PaymentStatus:  PaymentPaid,
		PaymentDetails: paymentDetails,
		AddressDetails: addressDetails,
		OrderItems:     []OrderItem{},
	})
	if err != nil {
		return Order{}, err
	}

	totalPrice := 0.0
	for _, itemRequest := range req.OrderItemList {
		details, err := p.catalog.DetailsForOrder(ctx, itemRequest.ProductID)
		if err != nil {
			return Order{}, p.abandon(ctx, order.ID, err)
		}

		if details.Quantity < itemRequest.Quantity {
			err := apperr.Newf(apperr.InsufficientStock, "%s has limited stock", details.Name)
			return Order{}, p.abandon(ctx, order.ID, err)
		}

		item, err := p.store.InsertItem(ctx, order.ID, OrderItem{
			ProductID:   itemRequest.ProductID,
			ProductName: details.Name,
			Category:    details.Category,
			Img:         details.Img,
			Price:       details.Price,
			Size:        itemRequest.Size,
			Quantity:    itemRequest.Quantity,
		})
		if err != nil {
			return Order{}, p.abandon(ctx, order.ID, err)
		}
		order.OrderItems = append(order.OrderItems, item)

		if err := p.catalog.UpdateQuantity(ctx, itemRequest.ProductID, details.Quantity-itemRequest.Quantity); err != nil {
			return Order{}, p.abandon(ctx, order.ID, err)
		}

		totalPrice += details.Price * float64(itemRequest.Quantity)
	}

	order.TotalPrice = totalPrice * 1.1
	if err := p.store.SetTotalPrice(ctx, order.ID, order.TotalPrice); err != nil {
		return Order{}, err
	}
	return order, nil
}

// abandon deletes the half-built order row and returns the workflow error.
func (p *Placer) abandon(ctx context.Context, orderID int, cause error) error {
	if err := p.store.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("deleting abandoned order %d after %w: %v", orderID, cause, err)
	}
	return cause
}

// AllOrders lists the user's orders.
func (p *Placer) AllOrders(ctx context.Context, userID int) ([]Order, error) {
	return p.store.OrdersByUser(ctx, userID)
}

// OrderByID fetches one of the user's orders. A missing order and another
// user's order are indistinguishable to the caller.
func (p *Placer) OrderByID(ctx context.Context, userID int, orderID int) (Order, error) {
	order, found, err := p.store.OrderByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !found || order.UserID != userID {
		return Order{}, apperr.New(apperr.NotFound, "Order not found")
	}
	return order, nil
}

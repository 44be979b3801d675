package orders

import (
	"context"
	"math"
	"testing"

	"github.com/shikhasoumya1612/ecommerce/internal/remote"
	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

type fakeStore struct {
	orders     map[int]*Order
	nextOrder  int
	nextItem   int
	deletedIDs []int
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[int]*Order{}, nextOrder: 1, nextItem: 1}
}

func (f *fakeStore) InsertOrder(_ context.Context, order Order) (Order, error) {
	order.ID = f.nextOrder
	f.nextOrder++
	stored := order
	f.orders[order.ID] = &stored
	return order, nil
}

func (f *fakeStore) DeleteOrder(_ context.Context, orderID int) error {
	delete(f.orders, orderID)
	f.deletedIDs = append(f.deletedIDs, orderID)
	return nil
}

func (f *fakeStore) InsertItem(_ context.Context, orderID int, item OrderItem) (OrderItem, error) {
	item.ID = f.nextItem
	f.nextItem++
	order := f.orders[orderID]
	order.OrderItems = append(order.OrderItems, item)
	return item, nil
}

func (f *fakeStore) SetTotalPrice(_ context.Context, orderID int, totalPrice float64) error {
	f.orders[orderID].TotalPrice = totalPrice
	return nil
}

func (f *fakeStore) OrdersByUser(_ context.Context, userID int) ([]Order, error) {
	list := []Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			list = append(list, *order)
		}
	}
	return list, nil
}

func (f *fakeStore) OrderByID(_ context.Context, orderID int) (Order, bool, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return Order{}, false, nil
	}
	return *order, true, nil
}

type fakeUserDirectory struct {
	addressErr error
	paymentErr error
}

func (f *fakeUserDirectory) AddressDetails(_ context.Context, addressID int) (string, error) {
	if f.addressErr != nil {
		return "", f.addressErr
	}
	return "Address - Home, 12B, MG Road, Near Park, 560001, Bengaluru, Karnataka", nil
}

func (f *fakeUserDirectory) PaymentDetails(_ context.Context, paymentMethodID int) (string, error) {
	if f.paymentErr != nil {
		return "", f.paymentErr
	}
	return "Paid using - UPI, accountId='XXXXXXXXbank'", nil
}

type fakeCatalog struct {
	products    map[string]remote.ProductDetails
	stock       map[string]int
	decrementEr error
}

func (f *fakeCatalog) DetailsForOrder(_ context.Context, productID string) (remote.ProductDetails, error) {
	details, ok := f.products[productID]
	if !ok {
		return remote.ProductDetails{}, apperr.New(apperr.InvalidInput, "Invalid product id")
	}
	details.Quantity = f.stock[productID]
	return details, nil
}

func (f *fakeCatalog) UpdateQuantity(_ context.Context, productID string, quantity int) error {
	if f.decrementEr != nil {
		return f.decrementEr
	}
	f.stock[productID] = quantity
	return nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]remote.ProductDetails{
			"p1": {Name: "Shirt", Category: "Clothing", Img: "shirt.png", Price: 100},
			"p2": {Name: "Shoe", Category: "Footwear", Img: "default-link", Price: 50},
		},
		stock: map[string]int{"p1": 10, "p2": 4},
	}
}

func validRequest() OrderRequest {
	return OrderRequest{
		AddressID:       7,
		PaymentMethodID: 3,
		OrderItemList: []OrderItemRequest{
			{ProductID: "p1", Size: "M", Quantity: 2},
			{ProductID: "p2", Size: "9", Quantity: 1},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	placer := NewPlacer(store, &fakeUserDirectory{}, catalog)

	order, err := placer.PlaceOrder(context.Background(), 42, validRequest())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if order.OrderStatus != StatusPlaced || order.PaymentStatus != PaymentPaid {
		t.Errorf("status = %s/%s, want PLACED/PAID", order.OrderStatus, order.PaymentStatus)
	}
	if order.AddressDetails == "" || order.PaymentDetails == "" {
		t.Error("snapshot strings must be stored on the order")
	}

	// Line totals: 2x100 + 1x50 = 250, plus 10%.
	want := 250.0 * 1.1
	if math.Abs(order.TotalPrice-want) > 1e-9 {
		t.Errorf("total = %v, want %v", order.TotalPrice, want)
	}
	if stored := store.orders[order.ID]; math.Abs(stored.TotalPrice-want) > 1e-9 {
		t.Errorf("stored total = %v, want %v", stored.TotalPrice, want)
	}

	// Stock decremented synchronously.
	if catalog.stock["p1"] != 8 || catalog.stock["p2"] != 3 {
		t.Errorf("stock after order = %v, want p1=8 p2=3", catalog.stock)
	}

	if len(order.OrderItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.OrderItems))
	}
	first := order.OrderItems[0]
	if first.ProductName != "Shirt" || first.Category != "Clothing" || first.Img != "shirt.png" || first.Price != 100 {
		t.Errorf("item must snapshot product details, got %+v", first)
	}
}

func TestPlaceOrderMissingIDs(t *testing.T) {
	placer := NewPlacer(newFakeStore(), &fakeUserDirectory{}, newFakeCatalog())

	_, err := placer.PlaceOrder(context.Background(), 42, OrderRequest{PaymentMethodID: 3})
	if err == nil || err.Error() != "Address id field cannot be empty" {
		t.Errorf("expected address id error, got %v", err)
	}

	_, err = placer.PlaceOrder(context.Background(), 42, OrderRequest{AddressID: 7})
	if err == nil || err.Error() != "Payment method id field cannot be empty" {
		t.Errorf("expected payment method id error, got %v", err)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	catalog.stock["p2"] = 0
	placer := NewPlacer(store, &fakeUserDirectory{}, catalog)

	_, err := placer.PlaceOrder(context.Background(), 42, validRequest())
	if err == nil || err.Error() != "Shoe has limited stock" {
		t.Fatalf("expected limited stock error, got %v", err)
	}
	if apperr.KindOf(err) != apperr.InsufficientStock {
		t.Errorf("kind = %v, want InsufficientStock", apperr.KindOf(err))
	}

	// The placeholder order row is deleted.
	if len(store.orders) != 0 {
		t.Errorf("expected abandoned order deleted, still have %v", store.orders)
	}
	if len(store.deletedIDs) != 1 {
		t.Errorf("expected one deletion, got %v", store.deletedIDs)
	}
	// Stock taken by the first item is not restored.
	if catalog.stock["p1"] != 8 {
		t.Errorf("p1 stock = %d, want 8 (earlier decrements are not compensated)", catalog.stock["p1"])
	}
}

func TestPlaceOrderRemoteFailureBeforeOrderRow(t *testing.T) {
	store := newFakeStore()
	users := &fakeUserDirectory{addressErr: apperr.New(apperr.RemoteUnavailable, "Service down. Try again later.")}
	placer := NewPlacer(store, users, newFakeCatalog())

	_, err := placer.PlaceOrder(context.Background(), 42, validRequest())
	if apperr.KindOf(err) != apperr.RemoteUnavailable {
		t.Fatalf("expected RemoteUnavailable, got %v", err)
	}
	if len(store.orders) != 0 {
		t.Error("no order row may exist when the address lookup fails")
	}
}

func TestPlaceOrderDecrementFailureDeletesOrder(t *testing.T) {
	store := newFakeStore()
	catalog := newFakeCatalog()
	catalog.decrementEr = apperr.New(apperr.RemoteUnavailable, "Service down. Try again later.")
	placer := NewPlacer(store, &fakeUserDirectory{}, catalog)

	_, err := placer.PlaceOrder(context.Background(), 42, validRequest())
	if apperr.KindOf(err) != apperr.RemoteUnavailable {
		t.Fatalf("expected RemoteUnavailable, got %v", err)
	}
	if len(store.orders) != 0 {
		t.Error("a failed stock decrement must delete the order row")
	}
}

func TestOrderByIDNotFound(t *testing.T) {
	store := newFakeStore()
	placer := NewPlacer(store, &fakeUserDirectory{}, newFakeCatalog())

	order, err := placer.PlaceOrder(context.Background(), 42, validRequest())
	if err != nil {
		t.Fatal(err)
	}

	// Another user's order reads exactly like a missing one.
	_, err = placer.OrderByID(context.Background(), 99, order.ID)
	if err == nil || err.Error() != "Order not found" {
		t.Errorf("foreign order: expected Order not found, got %v", err)
	}
	_, err = placer.OrderByID(context.Background(), 42, order.ID+100)
	if err == nil || err.Error() != "Order not found" {
		t.Errorf("missing order: expected Order not found, got %v", err)
	}

	got, err := placer.OrderByID(context.Background(), 42, order.ID)
	if err != nil || got.ID != order.ID {
		t.Errorf("owner lookup failed: %v %v", got, err)
	}
}

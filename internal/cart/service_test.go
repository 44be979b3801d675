package cart

import (
	"context"
	"testing"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

// fakeStore keeps carts in memory so the Service rules can run without
// postgres.
type fakeStore struct {
	carts      map[int]*Cart
	nextCartID int
	nextItemID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{carts: map[int]*Cart{}, nextCartID: 1, nextItemID: 1}
}

func (f *fakeStore) CartByUser(_ context.Context, userID int) (Cart, bool, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			return *cart, true, nil
		}
	}
	return Cart{}, false, nil
}

func (f *fakeStore) CreateCart(_ context.Context, userID int) (Cart, error) {
	cart := &Cart{ID: f.nextCartID, UserID: userID, CartItems: []CartItem{}}
	f.nextCartID++
	f.carts[cart.ID] = cart
	return *cart, nil
}

func (f *fakeStore) ItemByCartProductSize(_ context.Context, cartID int, productID string, size string) (CartItem, bool, error) {
	cart, ok := f.carts[cartID]
	if !ok {
		return CartItem{}, false, nil
	}
	for _, item := range cart.CartItems {
		if item.ProductID == productID && item.Size == size {
			return item, true, nil
		}
	}
	return CartItem{}, false, nil
}

func (f *fakeStore) InsertItem(_ context.Context, cartID int, item CartItem) (CartItem, error) {
	item.ID = f.nextItemID
	f.nextItemID++
	cart := f.carts[cartID]
	cart.CartItems = append(cart.CartItems, item)
	return item, nil
}

func (f *fakeStore) UpdateItemQuantity(_ context.Context, itemID int, quantity int) error {
	for _, cart := range f.carts {
		for i := range cart.CartItems {
			if cart.CartItems[i].ID == itemID {
				cart.CartItems[i].Quantity = quantity
				return nil
			}
		}
	}
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, itemID int) error {
	for _, cart := range f.carts {
		for i := range cart.CartItems {
			if cart.CartItems[i].ID == itemID {
				cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeStore) DeleteCart(_ context.Context, cartID int) error {
	delete(f.carts, cartID)
	return nil
}

func (f *fakeStore) itemsOfUser(t *testing.T, userID int) []CartItem {
	t.Helper()
	cart, found, _ := f.CartByUser(context.Background(), userID)
	if !found {
		t.Fatalf("user %d has no cart", userID)
	}
	return cart.CartItems
}

// fakeCatalog serves fixed stock levels.
type fakeCatalog map[string]int

func (f fakeCatalog) Quantity(_ context.Context, productID string) (int, error) {
	return f[productID], nil
}

func TestAddToCartCreatesCartLazily(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})

	err := svc.AddToCart(context.Background(), 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2})
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	items := store.itemsOfUser(t, 42)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("expected one line with quantity 2, got %v", items)
	}
}

func TestAddToCartMergesExistingLine(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2}); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 3}); err != nil {
		t.Fatal(err)
	}

	items := store.itemsOfUser(t, 42)
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Errorf("expected merged line with quantity 5, got %v", items)
	}
}

func TestAddToCartDistinctSizesAreDistinctLines(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "L", Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	if items := store.itemsOfUser(t, 42); len(items) != 2 {
		t.Errorf("expected two lines, got %v", items)
	}
}

func TestAddToCartLimitedStock(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 1})

	err := svc.AddToCart(context.Background(), 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2})
	if err == nil || err.Error() != "Product has limited stock" {
		t.Fatalf("expected limited stock error, got %v", err)
	}
	if apperr.KindOf(err) != apperr.InsufficientStock {
		t.Errorf("kind = %v, want InsufficientStock", apperr.KindOf(err))
	}
	if items := store.itemsOfUser(t, 42); len(items) != 0 {
		t.Errorf("cart must stay empty after a failed add, got %v", items)
	}
}

func TestRemoveFromCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 5}); err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveFromCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if items := store.itemsOfUser(t, 42); items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %v", items)
	}

	// Hitting exactly zero deletes the line.
	if err := svc.RemoveFromCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 3}); err != nil {
		t.Fatalf("RemoveFromCart to zero: %v", err)
	}
	if items := store.itemsOfUser(t, 42); len(items) != 0 {
		t.Errorf("expected line removed, got %v", items)
	}
}

func TestRemoveFromCartErrors(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})
	ctx := context.Background()

	err := svc.RemoveFromCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 0})
	if err == nil || err.Error() != "Quantity should not be less than 1" {
		t.Errorf("expected quantity validation error, got %v", err)
	}

	// Removing from a line that does not exist.
	err = svc.RemoveFromCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 1})
	if err == nil || err.Error() != "Cannot decrease quantity" {
		t.Errorf("expected cannot decrease error, got %v", err)
	}

	// Removing more than is present leaves the line untouched.
	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2}); err != nil {
		t.Fatal(err)
	}
	err = svc.RemoveFromCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 3})
	if err == nil || err.Error() != "Cannot decrease quantity" {
		t.Errorf("expected cannot decrease error, got %v", err)
	}
	if items := store.itemsOfUser(t, 42); items[0].Quantity != 2 {
		t.Errorf("line must be untouched after failed remove, got %v", items)
	}
}

func TestFetchCartCreatesEmptyCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{})

	cart, err := svc.FetchCart(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if cart.UserID != 42 || len(cart.CartItems) != 0 {
		t.Errorf("expected fresh empty cart for user 42, got %+v", cart)
	}
}

func TestClearCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{"p1": 10})
	ctx := context.Background()

	if err := svc.AddToCart(ctx, 42, CartItemBody{ProductID: "p1", Size: "M", Quantity: 2}); err != nil {
		t.Fatal(err)
	}
	oldCart, _, _ := store.CartByUser(ctx, 42)

	if err := svc.ClearCart(ctx, 42); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}

	newCart, found, _ := store.CartByUser(ctx, 42)
	if !found {
		t.Fatal("expected a fresh cart after clear")
	}
	if newCart.ID == oldCart.ID {
		t.Error("clear must recreate the cart, not empty it in place")
	}
	if len(newCart.CartItems) != 0 {
		t.Errorf("expected empty cart, got %v", newCart.CartItems)
	}
}

// Clearing before any cart exists still leaves the user with an empty cart.
func TestClearCartWithoutExistingCart(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, fakeCatalog{})

	if err := svc.ClearCart(context.Background(), 42); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if _, found, _ := store.CartByUser(context.Background(), 42); !found {
		t.Error("expected a cart to exist after clear")
	}
}

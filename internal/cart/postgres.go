package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Conf is the postgres-backed Store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

var _ Store = (*Conf)(nil)

// CartByUser fetches the user's cart with its lines. found is false when the
// user has no cart yet.
func (c *Conf) CartByUser(ctx context.Context, userID int) (Cart, bool, error) {
	var cart Cart
	err := c.db.QueryRowContext(ctx, `SELECT id, user_id FROM carts WHERE user_id = $1`, userID).
		Scan(&cart.ID, &cart.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, false, nil
		}
		return Cart{}, false, fmt.Errorf("fetching cart for user %d: %w", userID, err)
	}

	items, err := c.itemsForCart(ctx, cart.ID)
	if err != nil {
		return Cart{}, false, err
	}
	cart.CartItems = items
	return cart, true, nil
}

func (c *Conf) itemsForCart(ctx context.Context, cartID int) ([]CartItem, error) {
	query := `
		SELECT id, product_id, size, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("listing cart items: %w", err)
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart items: %w", err)
	}
	return items, nil
}

func (c *Conf) CreateCart(ctx context.Context, userID int) (Cart, error) {
	cart := Cart{UserID: userID, CartItems: []CartItem{}}
	err := c.db.QueryRowContext(ctx, `INSERT INTO carts (user_id) VALUES ($1) RETURNING id`, userID).
		Scan(&cart.ID)
	if err != nil {
		return Cart{}, fmt.Errorf("creating cart for user %d: %w", userID, err)
	}
	return cart, nil
}

func (c *Conf) ItemByCartProductSize(ctx context.Context, cartID int, productID string, size string) (CartItem, bool, error) {
	query := `
		SELECT id, product_id, size, quantity
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND size = $3
	`
	var item CartItem
	err := c.db.QueryRowContext(ctx, query, cartID, productID, size).
		Scan(&item.ID, &item.ProductID, &item.Size, &item.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CartItem{}, false, nil
		}
		return CartItem{}, false, fmt.Errorf("fetching cart item: %w", err)
	}
	return item, true, nil
}

func (c *Conf) InsertItem(ctx context.Context, cartID int, item CartItem) (CartItem, error) {
	query := `
		INSERT INTO cart_items (cart_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := c.db.QueryRowContext(ctx, query, cartID, item.ProductID, item.Size, item.Quantity).
		Scan(&item.ID)
	if err != nil {
		return CartItem{}, fmt.Errorf("inserting cart item: %w", err)
	}
	return item, nil
}

func (c *Conf) UpdateItemQuantity(ctx context.Context, itemID int, quantity int) error {
	if _, err := c.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID); err != nil {
		return fmt.Errorf("updating cart item %d: %w", itemID, err)
	}
	return nil
}

func (c *Conf) DeleteItem(ctx context.Context, itemID int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("deleting cart item %d: %w", itemID, err)
	}
	return nil
}

// DeleteCart removes the cart; its items cascade.
func (c *Conf) DeleteCart(ctx context.Context, cartID int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("deleting cart %d: %w", cartID, err)
	}
	return nil
}

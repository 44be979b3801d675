package orders

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

func (c *Conf) InsertOrder(ctx context.Context, order Order) (Order, error) {
	query := `
		INSERT INTO orders (user_id, total_price, order_date, order_status,
			payment_status, payment_details, address_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := c.db.QueryRowContext(ctx, query, order.UserID, order.TotalPrice, order.OrderDate,
		order.OrderStatus, order.PaymentStatus, order.PaymentDetails, order.AddressDetails).
		Scan(&order.ID)
	if err != nil {
		return Order{}, fmt.Errorf("inserting order: %w", err)
	}
	if order.OrderItems == nil {
		order.OrderItems = []OrderItem{}
	}
	return order, nil
}

// DeleteOrder removes an abandoned order; its items cascade.
func (c *Conf) DeleteOrder(ctx context.Context, orderID int) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("deleting order %d: %w", orderID, err)
	}
	return nil
}

func (c *Conf) InsertItem(ctx context.Context, orderID int, item OrderItem) (OrderItem, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, category,
			img, price, size, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := c.db.QueryRowContext(ctx, query, orderID, item.ProductID, item.ProductName,
		item.Category, item.Img, item.Price, item.Size, item.Quantity).Scan(&item.ID)
	if err != nil {
		return OrderItem{}, fmt.Errorf("inserting order item: %w", err)
	}
	return item, nil
}

func (c *Conf) SetTotalPrice(ctx context.Context, orderID int, totalPrice float64) error {
	if _, err := c.db.ExecContext(ctx, `UPDATE orders SET total_price = $1 WHERE id = $2`, totalPrice, orderID); err != nil {
		return fmt.Errorf("setting total price of order %d: %w", orderID, err)
	}
	return nil
}

const orderColumns = `
	id, user_id, total_price, order_date, order_status, payment_status,
	payment_details, address_details
`

func (c *Conf) OrdersByUser(ctx context.Context, userID int) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var order Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalPrice, &order.OrderDate,
			&order.OrderStatus, &order.PaymentStatus, &order.PaymentDetails, &order.AddressDetails); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	for i := range orders {
		items, err := c.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].OrderItems = items
	}
	return orders, nil
}

func (c *Conf) OrderByID(ctx context.Context, orderID int) (Order, bool, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var order Order
	err := c.db.QueryRowContext(ctx, query, orderID).Scan(&order.ID, &order.UserID,
		&order.TotalPrice, &order.OrderDate, &order.OrderStatus, &order.PaymentStatus,
		&order.PaymentDetails, &order.AddressDetails)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, false, nil
		}
		return Order{}, false, fmt.Errorf("fetching order %d: %w", orderID, err)
	}

	items, err := c.itemsForOrder(ctx, order.ID)
	if err != nil {
		return Order{}, false, err
	}
	order.OrderItems = items
	return order, true, nil
}

func (c *Conf) itemsForOrder(ctx context.Context, orderID int) ([]OrderItem, error) {
	query := `
		SELECT id, product_id, product_name, category, img, price, size, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Category,
			&item.Img, &item.Price, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}
	return items, nil
}

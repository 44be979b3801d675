package kafka

import "time"

const (
	TopicAccountCreated = `user-service.account-created`
	TopicOrderPlaced    = `order-service.order-placed`
)

// AccountCreatedEvent is emitted by the user service after a successful
// registration.
type AccountCreatedEvent struct {
	UserID    int       `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderPlacedEvent is emitted by the order service once an order has been
// fully persisted.
type OrderPlacedEvent struct {
	OrderID    int       `json:"order_id"`
	UserID     int       `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

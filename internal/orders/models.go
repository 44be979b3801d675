package orders

import "time"

const (
	StatusPlaced = "PLACED"

	PaymentPaid = "PAID"
)

// Order is a placed order. Address and payment method are stored as rendered
// snapshot strings, so later edits to the user's profile never rewrite order
// history.
type Order struct {
	ID             int         `json:"id"`
	UserID         int         `json:"userId"`
	TotalPrice     float64     `json:"totalPrice"`
	OrderDate      time.Time   `json:"orderDate"`
	OrderStatus    string      `json:"orderStatus"`
	PaymentStatus  string      `json:"paymentStatus"`
	PaymentDetails string      `json:"paymentDetails"`
	AddressDetails string      `json:"addressDetails"`
	OrderItems     []OrderItem `json:"orderItems"`
}

// OrderItem snapshots the product at purchase time: name, category, image and
// price are copied, not referenced.
type OrderItem struct {
	ID          int     `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Img         string  `json:"img"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
}

type OrderRequest struct {
	OrderItemList   []OrderItemRequest `json:"orderItemList"`
	AddressID       int                `json:"addressId"`
	PaymentMethodID int                `json:"paymentMethodId"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

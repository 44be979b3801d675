package cart

// Cart is one user's cart. Every user has at most one; it is created lazily on
// first touch.
type Cart struct {
	ID        int        `json:"id"`
	UserID    int        `json:"userId"`
	CartItems []CartItem `json:"cartItems"`
}

// CartItem is one product+size line. Quantity is always at least 1; a line
// that would reach zero is deleted instead.
type CartItem struct {
	ID        int    `json:"id"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// CartItemBody is the request body shared by addToCart and removeFromCart.
type CartItemBody struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

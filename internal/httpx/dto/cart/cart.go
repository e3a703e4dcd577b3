package cart

import "github.com/dropDatabas3/storefront/internal/cart"

// AddItemRequest holds the body for POST /api/cart/items.
// Product fields travel with the request because the cart service does not
// re-fetch the catalog on every mutation.
type AddItemRequest struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Thumbnail          string  `json:"thumbnail,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	Brand              string  `json:"brand,omitempty"`
	Category           string  `json:"category,omitempty"`
	// Quantity <= 0 se normaliza a 1.
	Quantity int `json:"quantity"`
}

// UpdateQuantityRequest holds the body for PUT /api/cart/items/{id}.
type UpdateQuantityRequest struct {
	// Quantity <= 0 elimina el ítem.
	Quantity int `json:"quantity"`
}

// Response is the cart snapshot returned by every cart endpoint.
type Response struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	ItemCount  int         `json:"itemCount"`
	TotalPrice float64     `json:"totalPrice"`
}

// FromCart builds the wire snapshot from the domain cart.
func FromCart(c *cart.Cart) Response {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return Response{
		Items:      items,
		TotalItems: c.TotalItems(),
		ItemCount:  c.ItemCount(),
		TotalPrice: c.TotalPrice(),
	}
}

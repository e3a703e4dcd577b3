// Package cart implementa el carrito de compras: líneas, merge por producto,
// totales derivados y persistencia best-effort por sesión.
package cart

import "errors"

// ErrItemNotFound indica que el ítem no existe en el carrito.
var ErrItemNotFound = errors.New("cart: item not found")

// Item es una línea del carrito. La cantidad se muta in-place; la línea se
// elimina cuando la cantidad llega a cero o por borrado explícito.
type Item struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Thumbnail          string  `json:"thumbnail"`
	Quantity           int     `json:"quantity"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	Brand              string  `json:"brand,omitempty"`
	Category           string  `json:"category,omitempty"`
}

// Cart es la colección de líneas de una sesión.
// No es safe para uso concurrente; cada sesión opera su propio carrito.
type Cart struct {
	Items []Item `json:"items"`
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Product es lo mínimo que hace falta para agregar una línea.
type Product struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Thumbnail          string  `json:"thumbnail"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
}

// AddItem agrega qty unidades del producto. Si ya existe una línea con el
// mismo ID, suma cantidades en esa línea; nunca duplica líneas.
func (c *Cart) AddItem(p Product, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, Item{
		ID:                 p.ID,
		Title:              p.Title,
		Price:              p.Price,
		Thumbnail:          p.Thumbnail,
		Quantity:           qty,
		DiscountPercentage: p.DiscountPercentage,
		Brand:              p.Brand,
		Category:           p.Category,
	})
}

// RemoveItem elimina la línea del producto. Devuelve false si no existía.
func (c *Cart) RemoveItem(id int) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity fija la cantidad de una línea. qty <= 0 elimina la línea.
// Devuelve false si la línea no existía.
func (c *Cart) UpdateQuantity(id, qty int) bool {
	if qty <= 0 {
		return c.RemoveItem(id)
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = qty
			return true
		}
	}
	return false
}

// Clear vacía el carrito completo.
func (c *Cart) Clear() {
	c.Items = nil
}

// ---- Derivados (calculados, nunca almacenados) ----

// TotalItems es la suma de cantidades de todas las líneas.
func (c *Cart) TotalItems() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

// ItemCount es la cantidad de líneas distintas.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalPrice es la suma de los totales de línea con descuento aplicado.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for i := range c.Items {
		it := &c.Items[i]
		total += ItemTotal(it.Price, it.Quantity, it.DiscountPercentage)
	}
	return total
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

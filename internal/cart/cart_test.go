package cart

import (
	"math"
	"testing"
)

func producto(id int, price float64) Product {
	return Product{ID: id, Title: "p", Price: price}
}

func TestAddItem_MergePorID(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 2)
	c.AddItem(producto(1, 10), 3)

	if len(c.Items) != 1 {
		t.Fatalf("líneas duplicadas: %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", c.Items[0].Quantity)
	}
}

func TestAddItem_CantidadInvalidaEsUno(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 0)
	c.AddItem(producto(2, 10), -4)

	if c.Items[0].Quantity != 1 || c.Items[1].Quantity != 1 {
		t.Fatalf("got %+v", c.Items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 2)

	if !c.UpdateQuantity(1, 7) {
		t.Fatal("update de ítem existente falló")
	}
	if c.Items[0].Quantity != 7 {
		t.Fatalf("quantity = %d", c.Items[0].Quantity)
	}
	if c.UpdateQuantity(99, 1) {
		t.Fatal("update de ítem inexistente reportó éxito")
	}
}

func TestUpdateQuantity_CeroElimina(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 2)
	c.AddItem(producto(2, 20), 1)

	if !c.UpdateQuantity(1, 0) {
		t.Fatal("update a cero falló")
	}
	if len(c.Items) != 1 || c.Items[0].ID != 2 {
		t.Fatalf("got %+v", c.Items)
	}
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 1)

	if !c.RemoveItem(1) {
		t.Fatal("remove falló")
	}
	if c.RemoveItem(1) {
		t.Fatal("remove de ítem ya eliminado reportó éxito")
	}
	if !c.IsEmpty() {
		t.Fatal("carrito debería quedar vacío")
	}
}

func TestTotales(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 2)
	c.AddItem(producto(2, 5), 3)

	if c.TotalItems() != 5 {
		t.Fatalf("TotalItems = %d", c.TotalItems())
	}
	if c.ItemCount() != 2 {
		t.Fatalf("ItemCount = %d", c.ItemCount())
	}
	if got := c.TotalPrice(); math.Abs(got-35) > 1e-9 {
		t.Fatalf("TotalPrice = %v", got)
	}
}

func TestTotalPrice_ConDescuento(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Title: "p", Price: 100, DiscountPercentage: 20}, 3)

	if got := c.TotalPrice(); math.Abs(got-240) > 1e-9 {
		t.Fatalf("TotalPrice = %v, want 240", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(producto(1, 10), 1)
	c.Clear()
	if !c.IsEmpty() || c.TotalItems() != 0 {
		t.Fatal("Clear no vació el carrito")
	}
}

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		price, pct, want float64
	}{
		{100, 20, 80},
		{100, 0, 100},
		{100, -5, 100},  // negativo: sin descuento
		{100, 150, 100}, // fuera de rango: sin descuento
		{100, 100, 0},
		{49.99, 10, 44.991},
	}
	for _, tc := range cases {
		if got := DiscountedPrice(tc.price, tc.pct); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("DiscountedPrice(%v, %v) = %v, want %v", tc.price, tc.pct, got, tc.want)
		}
	}
}

func TestItemTotal(t *testing.T) {
	if got := ItemTotal(100, 3, 20); math.Abs(got-240) > 1e-9 {
		t.Fatalf("ItemTotal = %v, want 240", got)
	}
}

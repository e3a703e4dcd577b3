package cart

// DiscountedPrice aplica el porcentaje de descuento a un precio unitario:
// price × (1 − pct/100). Un pct fuera de [0,100] se trata como sin descuento.
func DiscountedPrice(price, pct float64) float64 {
	if pct <= 0 || pct > 100 {
		return price
	}
	return price * (1 - pct/100)
}

// ItemTotal es el total de línea: precio con descuento × cantidad.
func ItemTotal(price float64, qty int, pct float64) float64 {
	if qty <= 0 {
		return 0
	}
	return DiscountedPrice(price, pct) * float64(qty)
}

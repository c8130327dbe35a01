package domain

// CartLine is one product entry in a cart. A cart holds at most one line
// per product id; repeated adds merge into the existing line.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

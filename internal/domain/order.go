package domain

import "time"

type OrderStatus string

// OrderStatusConfirmed is terminal; orders are only created on successful
// checkout and never mutated afterwards.
const OrderStatusConfirmed OrderStatus = "CONFIRMED"

type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order is the snapshot record produced by a successful checkout. It does
// not alias the cart; the cart is cleared separately after the order is
// built.
type Order struct {
	ID                string      `json:"order_id"`
	Status            OrderStatus `json:"status"`
	Timestamp         time.Time   `json:"timestamp"`
	Items             []OrderItem `json:"items"`
	Subtotal          float64     `json:"subtotal"`
	Tax               float64     `json:"tax"`
	Shipping          float64     `json:"shipping"`
	Total             float64     `json:"total"`
	EstimatedDelivery time.Time   `json:"estimated_delivery"`
	PaymentID         string      `json:"payment_id"`
}

package domain

// Product is a read-only item from the remote catalog. Instances are
// immutable once fetched.
type Product struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

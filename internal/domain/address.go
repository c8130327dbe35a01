package domain

// Address is a shipping address. Fields are free-form at input time;
// completeness and format are only enforced by the validator.
type Address struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

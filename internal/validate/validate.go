package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidOrderAmount = errors.New("invalid order amount")
)

var (
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phonePattern   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// ValidationError reports a structural problem with checkout input. When
// address fields are missing, MissingFields holds every missing field name,
// not just the first.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Address checks that all required fields are present (non-empty after
// trimming) and that pincode and phone match their formats. Missing fields
// are reported together; format problems are separate errors.
func Address(a domain.Address) error {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
		{"phone", a.Phone},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Message:       fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			MissingFields: missing,
		}
	}

	if !pincodePattern.MatchString(a.Pincode) {
		return &ValidationError{Message: "invalid pincode format"}
	}
	if !phonePattern.MatchString(a.Phone) {
		return &ValidationError{Message: "invalid phone number format"}
	}
	return nil
}

// Order checks that there is something to buy and that the computed total
// is positive. Pure predicate, no side effects.
func Order(lines []domain.CartLine, total float64) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	if total <= 0 {
		return ErrInvalidOrderAmount
	}
	return nil
}

package domain

// CheckoutStep is the position of a checkout attempt in the orchestration
// sequence. Each value marks the step currently in progress or just
// completed.
type CheckoutStep int

const (
	StepIdle CheckoutStep = iota
	StepAddressValidated
	StepOrderValidated
	StepPaymentConfirmed
	StepFinalized
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepFinalized
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	switch s {
	case StepIdle:
		return "IDLE"
	case StepAddressValidated:
		return "ADDRESS_VALIDATED"
	case StepOrderValidated:
		return "ORDER_VALIDATED"
	case StepPaymentConfirmed:
		return "PAYMENT_CONFIRMED"
	case StepFinalized:
		return "FINALIZED"
	default:
		return "UNKNOWN"
	}
}

// CanTransitionTo reports whether a checkout may move from one step to
// another. Steps advance strictly one at a time; the only other legal move
// is the reset to StepIdle that follows a failure.
func CanTransitionTo(from, to CheckoutStep) bool {
	if to == StepIdle {
		return true
	}
	return to == from+1 && to <= StepFinalized
}

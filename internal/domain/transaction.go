package domain

import "time"

type TransactionKind string

const (
	KindPayment TransactionKind = "PAYMENT"
	KindDeposit TransactionKind = "DEPOSIT"
)

type TransactionStatus string

// StatusSuccess is the only transaction status modeled; there is no
// partial or pending state.
const StatusSuccess TransactionStatus = "SUCCESS"

// Transaction is one wallet ledger entry. Amount is negative for payments
// and positive for deposits. Immutable once created.
type Transaction struct {
	ID        string            `json:"id"`
	Amount    float64           `json:"amount"`
	Kind      TransactionKind   `json:"kind"`
	Status    TransactionStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

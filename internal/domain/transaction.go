package domain

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusRefunded  TransactionStatus = "Refunded"
)

type Transaction struct {
	ID                    int32             `json:"id"`
	MemberID              *int32            `json:"member_id,omitempty"` // nil after the member is removed
	AmountCents           int64             `json:"amount_cents"`
	PaymentMethod         string            `json:"payment_method"`
	ExternalTransactionID string            `json:"external_transaction_id,omitempty"`
	Status                TransactionStatus `json:"status"`
	CreatedOn             string            `json:"created_on"`
}

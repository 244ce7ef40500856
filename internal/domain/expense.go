package domain

type Expense struct {
	ID          int32  `json:"id"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description,omitempty"`
	EventName   string `json:"event_name,omitempty"`
	CreatedBy   *int32 `json:"created_by,omitempty"`
	CreatedOn   string `json:"created_on"`
}

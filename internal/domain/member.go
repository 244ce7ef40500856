package domain

import "time"

type MemberRole string

const (
	MemberRoleMember    MemberRole = "Member"
	MemberRoleTreasurer MemberRole = "Treasurer"
	MemberRoleAdmin     MemberRole = "Admin"
)

type Member struct {
	ID              int32         `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	DuesAmountCents int64         `json:"dues_amount_cents"`
	AmountPaidCents int64         `json:"amount_paid_cents"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Role            MemberRole    `json:"role"`
	PasswordHash    string        `json:"-"`
	DueDate         *time.Time    `json:"due_date,omitempty"`
	CreatedOn       string        `json:"created_on"`
}

// OutstandingCents returns the member's unpaid balance. It can go negative
// when a member overpays; callers that gate on "still owes money" must
// compare against zero, not against the stored status.
func (m *Member) OutstandingCents() int64 {
	return m.DuesAmountCents - m.AmountPaidCents
}

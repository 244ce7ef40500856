package domain

// ChapterStats is the aggregate financial picture sent in the weekly summary
// and served from the stats endpoint. Both paths compute it the same way so
// the dashboard and the Slack summary can never disagree.
type ChapterStats struct {
	TotalMembers        int32   `json:"total_members"`
	PaidMembers         int32   `json:"paid_members"`
	PendingMembers      int32   `json:"pending_members"`
	OverdueMembers      int32   `json:"overdue_members"`
	TotalExpectedCents  int64   `json:"total_expected_cents"`
	TotalCollectedCents int64   `json:"total_collected_cents"`
	OutstandingCents    int64   `json:"outstanding_cents"`
	CollectionRate      float64 `json:"collection_rate"`
	TotalExpensesCents  int64   `json:"total_expenses_cents"`
}

// ComputeCollectionRate returns collected/expected as a percentage,
// rounded to two decimal places. Zero expected means a zero rate.
func ComputeCollectionRate(collectedCents, expectedCents int64) float64 {
	if expectedCents <= 0 {
		return 0
	}
	rate := float64(collectedCents) / float64(expectedCents) * 100
	return float64(int64(rate*100+0.5)) / 100
}

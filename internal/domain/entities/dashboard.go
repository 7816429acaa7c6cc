package entities

// DashboardStats is the headline counters of the review dashboard
type DashboardStats struct {
	TotalMerchants    int64 `json:"totalMerchants"`
	VerifiedMerchants int64 `json:"verifiedMerchants"`
	FlaggedMerchants  int64 `json:"flaggedMerchants"`
	PendingMerchants  int64 `json:"pendingMerchants"`
	RejectedMerchants int64 `json:"rejectedMerchants"`
	RecentMerchants   int64 `json:"recentMerchants"`
	OpenFlags         int64 `json:"openFlags"`
	HighRiskMerchants int64 `json:"highRiskMerchants"`
}

// CategoryCount is one bucket of a grouped count
type CategoryCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

package domain

// Tier is a coarse high/medium/low classification.
type Tier string

// Tier values.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// AuditResult is the outcome of scoring one text.
type AuditResult struct {
	Score           int      `json:"score"` // 0-100
	Passed          bool     `json:"passed"`
	Violations      []string `json:"violations"`
	Recommendations []string `json:"recommendations"`
	Frequency       Tier     `json:"frequency"`
}

// ComplianceReport summarizes a batch of audits.
type ComplianceReport struct {
	OverallCompliance  float64  `json:"overall_compliance"`
	PassedCount        int      `json:"passed_count"`
	FailedCount        int      `json:"failed_count"`
	AverageFrequency   Tier     `json:"average_frequency"`
	CriticalViolations []string `json:"critical_violations"`
}

package model

// AIIdentificationResult is the transient output of the photo identification
// call. It is never stored as its own entity; it is either discarded or folded
// into a new Product after user confirmation.
type AIIdentificationResult struct {
	Name              string `json:"name"`
	Brand             string `json:"brand"`
	Category          string `json:"category"`
	Model             string `json:"model,omitempty"`
	Color             string `json:"color,omitempty"`
	Confidence        int    `json:"confidence,omitempty"`        // 0-100
	SuggestedWarranty int    `json:"suggestedWarranty,omitempty"` // months
	Description       string `json:"description,omitempty"`
}

// User-facing identification error categories. Each drives different retry
// messaging; all three allow the same exits (retake or manual entry).
const (
	ScanErrorBlur       = "blur"
	ScanErrorNotFound   = "not-found"
	ScanErrorConnection = "connection"
)

// Confidence tiers, advisory only
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ConfidenceTier buckets a 0-100 confidence score for display
func ConfidenceTier(confidence int) string {
	switch {
	case confidence >= 90:
		return ConfidenceHigh
	case confidence >= 70:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

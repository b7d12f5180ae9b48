package model

import (
	"time"
)

// WarrantyClaim represents a claim against a product's warranty
type WarrantyClaim struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	UserID           string    `json:"userId"`
	Status           string    `json:"status"`
	IssueDescription string    `json:"issueDescription"`
	ClaimDate        time.Time `json:"claimDate"`
	AISuggestions    []string  `json:"aiSuggestions,omitempty"`
	Documents        []string  `json:"documents,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Claim status constants. Only draft -> submitted is client-initiated;
// the remaining transitions are asserted by the claims service.
const (
	ClaimDraft      = "draft"
	ClaimSubmitted  = "submitted"
	ClaimInProgress = "in-progress"
	ClaimApproved   = "approved"
	ClaimRejected   = "rejected"
)

// AIMessage is one entry in a claim conversation transcript.
// Messages are immutable once created; transcript order is insertion order.
type AIMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

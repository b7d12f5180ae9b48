package service

import (
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kp3ventures/coverkeep-backend/model"
)

var (
	// ErrSessionActive is returned when a user starts a claim session while
	// a session for a different product is still open
	ErrSessionActive = errors.New("a claim session is already active")
	// ErrNoSession is returned when an operation needs a current session and
	// none exists
	ErrNoSession = errors.New("no active claim session")
	// ErrInvalidState is returned when a claim transition is not allowed
	// from the claim's current status
	ErrInvalidState = errors.New("invalid claim state for this operation")
)

// ClaimSession is one claim-in-progress: the draft claim plus its running
// conversation transcript. Discarded wholesale when the filing session ends.
type ClaimSession struct {
	Claim      *model.WarrantyClaim
	Transcript []model.AIMessage
}

// ClaimSessions owns the current claim session per user. At most one session
// is active per user at a time.
type ClaimSessions struct {
	sessions  map[string]*ClaimSession // keyed by user id
	assistant *Assistant
	mu        sync.Mutex
}

func NewClaimSessions(assistant *Assistant) *ClaimSessions {
	return &ClaimSessions{
		sessions:  make(map[string]*ClaimSession),
		assistant: assistant,
	}
}

// Start opens a claim session for the product, entering the draft state and
// seeding the transcript with the assistant greeting. Starting again for the
// same product returns the existing session; for a different product it fails
// with ErrSessionActive until the current session is ended.
func (s *ClaimSessions) Start(userID string, product *model.Product) (*ClaimSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[userID]; ok {
		if existing.Claim.ProductID == product.ID {
			return existing, nil
		}
		return nil, ErrSessionActive
	}

	now := time.Now()
	session := &ClaimSession{
		Claim: &model.WarrantyClaim{
			ID:        ulid.Make().String(),
			ProductID: product.ID,
			UserID:    userID,
			Status:    model.ClaimDraft,
			ClaimDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	session.Transcript = append(session.Transcript, model.AIMessage{
		ID:        ulid.Make().String(),
		Role:      model.RoleAssistant,
		Content:   s.assistant.Greeting(product.Name),
		Timestamp: now,
	})

	s.sessions[userID] = session
	return session, nil
}

// Current returns the user's active session, or nil
func (s *ClaimSessions) Current(userID string) *ClaimSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// RecordUserMessage appends a user message to the transcript and folds the
// text into the claim's issue description. The description is overwritten,
// not concatenated: each message supersedes the claim's summary.
func (s *ClaimSessions) RecordUserMessage(userID, text string) (model.AIMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return model.AIMessage{}, ErrNoSession
	}

	msg := model.AIMessage{
		ID:        ulid.Make().String(),
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	session.Transcript = append(session.Transcript, msg)
	session.Claim.IssueDescription = text
	session.Claim.UpdatedAt = msg.Timestamp

	return msg, nil
}

// RecordAssistantMessage appends an assistant message to the transcript.
// It never touches the issue description.
func (s *ClaimSessions) RecordAssistantMessage(userID, text string) (model.AIMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return model.AIMessage{}, ErrNoSession
	}

	msg := model.AIMessage{
		ID:        ulid.Make().String(),
		Role:      model.RoleAssistant,
		Content:   text,
		Timestamp: time.Now(),
	}
	session.Transcript = append(session.Transcript, msg)

	return msg, nil
}

// Submit moves the current claim from draft to submitted, the only
// client-initiated transition. An empty issue description is allowed.
func (s *ClaimSessions) Submit(userID string) (*model.WarrantyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	if session.Claim.Status != model.ClaimDraft {
		return nil, ErrInvalidState
	}

	session.Claim.Status = model.ClaimSubmitted
	session.Claim.UpdatedAt = time.Now()
	return session.Claim, nil
}

// Reflect records a server-asserted status (in-progress, approved, rejected)
// on the current claim. The transition itself is decided upstream; it is only
// mirrored here, never computed.
func (s *ClaimSessions) Reflect(userID, status string) (*model.WarrantyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	switch status {
	case model.ClaimInProgress, model.ClaimApproved, model.ClaimRejected:
	default:
		return nil, ErrInvalidState
	}

	session.Claim.Status = status
	session.Claim.UpdatedAt = time.Now()
	return session.Claim, nil
}

// Annotate attaches notes and supporting document references to the current
// claim. Nil fields are left untouched.
func (s *ClaimSessions) Annotate(userID string, notes *string, documents []string) (*model.WarrantyClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	if notes != nil {
		session.Claim.Notes = *notes
	}
	if documents != nil {
		session.Claim.Documents = documents
	}
	session.Claim.UpdatedAt = time.Now()
	return session.Claim, nil
}

// End discards the user's current claim and transcript unconditionally.
// An unsubmitted draft is lost; callers invoke this on navigation away or
// explicit cancel.
func (s *ClaimSessions) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

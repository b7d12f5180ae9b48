package service

import (
	"errors"
	"sync"

	"github.com/kp3ventures/coverkeep-backend/model"
)

// Scan flow states. The photo-identification flow is a small state machine:
// idle -> capturing -> processing -> {result, error} -> {confirmed, editing,
// retaking, cancelled}.
const (
	ScanIdle       = "idle"
	ScanCapturing  = "capturing"
	ScanProcessing = "processing"
	ScanResult     = "result"
	ScanError      = "error"
	ScanConfirmed  = "confirmed"
	ScanEditing    = "editing"
	ScanRetaking   = "retaking"
	ScanCancelled  = "cancelled"
)

var (
	// ErrScanInFlight is returned when an identification request arrives
	// while one is already processing; at most one is in flight at a time
	ErrScanInFlight = errors.New("identification already in progress")
	// ErrNoScanResult is returned for confirm/edit without a held result
	ErrNoScanResult = errors.New("no identification result to act on")
)

// ProductForm is the product-creation form the scan flow folds results into.
// The AI never auto-submits a product; the form goes back to the user for
// final review and manual confirmation.
type ProductForm struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	WarrantyMonths int    `json:"warrantyMonths,omitempty"`
}

// ScanFlow reconciles AI identification results into a draft product for one
// user's capture session.
type ScanFlow struct {
	state  string
	result *model.AIIdentificationResult
	errCat string
	mu     sync.Mutex
}

func NewScanFlow() *ScanFlow {
	return &ScanFlow{state: ScanIdle}
}

// State returns the current flow state
func (f *ScanFlow) State() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// StartCapture moves the flow into capturing
func (f *ScanFlow) StartCapture() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ScanCapturing
	f.result = nil
	f.errCat = ""
}

// BeginProcessing gates the identification call: it fails with
// ErrScanInFlight while a previous request is still processing.
func (f *ScanFlow) BeginProcessing() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == ScanProcessing {
		return ErrScanInFlight
	}
	f.state = ScanProcessing
	f.result = nil
	f.errCat = ""
	return nil
}

// SetResult records a successful identification
func (f *ScanFlow) SetResult(result *model.AIIdentificationResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ScanResult
	f.result = result
	f.errCat = ""
}

// SetError records a failed identification under its user-facing category
func (f *ScanFlow) SetError(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ScanError
	f.result = nil
	f.errCat = category
}

// Result returns the held identification result, or nil
func (f *ScanFlow) Result() *model.AIIdentificationResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// ErrorCategory returns the held error category, or ""
func (f *ScanFlow) ErrorCategory() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errCat
}

// Confirm folds the held result into a product form for final review and
// exits to manual entry. Confidence tiering is advisory and never blocks
// confirmation.
func (f *ScanFlow) Confirm() (*ProductForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.result == nil {
		return nil, ErrNoScanResult
	}

	form := foldResult(f.result)
	f.state = ScanConfirmed
	return form, nil
}

// Edit folds a user-edited copy of the result instead of the held one.
// All fields are user-editable before folding.
func (f *ScanFlow) Edit(edited *model.AIIdentificationResult) (*ProductForm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.result == nil {
		return nil, ErrNoScanResult
	}

	form := foldResult(edited)
	f.state = ScanEditing
	return form, nil
}

// Retake discards the current result or error and returns to capturing
func (f *ScanFlow) Retake() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ScanCapturing
	f.result = nil
	f.errCat = ""
}

// Cancel discards the result or error and exits to manual entry with no
// fields pre-filled
func (f *ScanFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = ScanCancelled
	f.result = nil
	f.errCat = ""
}

func foldResult(r *model.AIIdentificationResult) *ProductForm {
	form := &ProductForm{
		Name:     r.Name,
		Brand:    r.Brand,
		Category: r.Category,
	}
	if r.SuggestedWarranty > 0 {
		form.WarrantyMonths = r.SuggestedWarranty
	}
	return form
}

// ScanFlows holds one scan flow per user
type ScanFlows struct {
	flows map[string]*ScanFlow
	mu    sync.Mutex
}

func NewScanFlows() *ScanFlows {
	return &ScanFlows{flows: make(map[string]*ScanFlow)}
}

// ForUser returns the user's scan flow, creating it on first use
func (s *ScanFlows) ForUser(userID string) *ScanFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[userID]
	if !ok {
		flow = NewScanFlow()
		s.flows[userID] = flow
	}
	return flow
}

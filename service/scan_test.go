package service

import (
	"errors"
	"testing"

	"github.com/kp3ventures/coverkeep-backend/model"
)

func scanResult() *model.AIIdentificationResult {
	return &model.AIIdentificationResult{
		Name:              "V11 Absolute",
		Brand:             "Dyson",
		Category:          "Vacuum",
		Confidence:        93,
		SuggestedWarranty: 24,
	}
}

func TestScanFlowHappyPath(t *testing.T) {
	flow := NewScanFlow()

	if flow.State() != ScanIdle {
		t.Errorf("Expected idle, got %s", flow.State())
	}

	flow.StartCapture()
	if flow.State() != ScanCapturing {
		t.Errorf("Expected capturing, got %s", flow.State())
	}

	if err := flow.BeginProcessing(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if flow.State() != ScanProcessing {
		t.Errorf("Expected processing, got %s", flow.State())
	}

	flow.SetResult(scanResult())
	if flow.State() != ScanResult {
		t.Errorf("Expected result, got %s", flow.State())
	}

	form, err := flow.Confirm()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if flow.State() != ScanConfirmed {
		t.Errorf("Expected confirmed, got %s", flow.State())
	}
	if form.Name != "V11 Absolute" || form.Brand != "Dyson" || form.Category != "Vacuum" {
		t.Errorf("Unexpected fold: %+v", form)
	}
	if form.WarrantyMonths != 24 {
		t.Errorf("Expected suggested warranty folded, got %d", form.WarrantyMonths)
	}
}

func TestScanFlowProcessingGate(t *testing.T) {
	flow := NewScanFlow()
	flow.StartCapture()

	if err := flow.BeginProcessing(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// a second request while one is in flight is rejected
	if err := flow.BeginProcessing(); !errors.Is(err, ErrScanInFlight) {
		t.Errorf("Expected ErrScanInFlight, got %v", err)
	}

	// once the first resolves, processing can start again
	flow.SetError(model.ScanErrorConnection)
	if err := flow.BeginProcessing(); err != nil {
		t.Errorf("Expected processing allowed after resolution, got %v", err)
	}
}

// LOW_CONFIDENCE failure lands in the blur category; retake clears it and
// returns to capturing.
func TestScanFlowErrorThenRetake(t *testing.T) {
	flow := NewScanFlow()
	flow.StartCapture()
	flow.BeginProcessing()

	err := &IdentifyError{StatusCode: 400, Code: CodeLowConfidence}
	flow.SetError(Classify(err))

	if flow.State() != ScanError {
		t.Errorf("Expected error state, got %s", flow.State())
	}
	if flow.ErrorCategory() != model.ScanErrorBlur {
		t.Errorf("Expected blur category, got %s", flow.ErrorCategory())
	}

	flow.Retake()
	if flow.State() != ScanCapturing {
		t.Errorf("Expected capturing after retake, got %s", flow.State())
	}
	if flow.ErrorCategory() != "" {
		t.Errorf("Expected error cleared, got %s", flow.ErrorCategory())
	}
	if flow.Result() != nil {
		t.Error("Expected no result after retake")
	}
}

func TestScanFlowEdit(t *testing.T) {
	flow := NewScanFlow()
	flow.StartCapture()
	flow.BeginProcessing()
	flow.SetResult(scanResult())

	edited := scanResult()
	edited.Name = "V11 Animal"
	edited.SuggestedWarranty = 12

	form, err := flow.Edit(edited)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if flow.State() != ScanEditing {
		t.Errorf("Expected editing, got %s", flow.State())
	}
	// the edited copy is folded, not the held result
	if form.Name != "V11 Animal" {
		t.Errorf("Expected edited name folded, got %s", form.Name)
	}
	if form.WarrantyMonths != 12 {
		t.Errorf("Expected edited warranty folded, got %d", form.WarrantyMonths)
	}
}

func TestScanFlowConfirmWithoutResult(t *testing.T) {
	flow := NewScanFlow()

	if _, err := flow.Confirm(); !errors.Is(err, ErrNoScanResult) {
		t.Errorf("Expected ErrNoScanResult, got %v", err)
	}
	if _, err := flow.Edit(scanResult()); !errors.Is(err, ErrNoScanResult) {
		t.Errorf("Expected ErrNoScanResult, got %v", err)
	}
}

func TestScanFlowCancel(t *testing.T) {
	flow := NewScanFlow()
	flow.StartCapture()
	flow.BeginProcessing()
	flow.SetResult(scanResult())

	flow.Cancel()

	if flow.State() != ScanCancelled {
		t.Errorf("Expected cancelled, got %s", flow.State())
	}
	if flow.Result() != nil {
		t.Error("Expected result discarded on cancel")
	}
}

func TestScanFlowFoldWithoutSuggestedWarranty(t *testing.T) {
	flow := NewScanFlow()
	flow.StartCapture()
	flow.BeginProcessing()

	r := scanResult()
	r.SuggestedWarranty = 0
	flow.SetResult(r)

	form, err := flow.Confirm()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if form.WarrantyMonths != 0 {
		t.Errorf("Expected no warranty suggestion, got %d", form.WarrantyMonths)
	}
}

func TestScanFlowsPerUser(t *testing.T) {
	flows := NewScanFlows()

	a := flows.ForUser("user1")
	b := flows.ForUser("user2")
	if a == b {
		t.Error("Expected distinct flows per user")
	}
	if flows.ForUser("user1") != a {
		t.Error("Expected stable flow per user")
	}

	// one user's in-flight scan does not gate another's
	a.BeginProcessing()
	if err := b.BeginProcessing(); err != nil {
		t.Errorf("Unexpected error for second user: %v", err)
	}
}

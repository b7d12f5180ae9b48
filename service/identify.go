package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kp3ventures/coverkeep-backend/config"
	"github.com/kp3ventures/coverkeep-backend/model"
)

// IdentifyService calls the upstream AI product-identification API.
// Identification is compute-heavy upstream, so the HTTP client carries its
// own extended timeout rather than sharing a general-purpose client.
type IdentifyService struct {
	config     *config.IdentifyConfig
	httpClient *http.Client
}

// identifyRequest is the request body for an identification call
type identifyRequest struct {
	Image  string `json:"image"` // base64
	UserID string `json:"userId"`
}

// identifyResponse is the upstream response envelope
type identifyResponse struct {
	Success bool                          `json:"success"`
	Product *model.AIIdentificationResult `json:"product,omitempty"`
	Error   *identifyResponseError        `json:"error,omitempty"`
}

type identifyResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Upstream error codes that indicate a problem with the photo itself
const (
	CodeLowConfidence = "LOW_CONFIDENCE"
	CodeNoProduct     = "NO_PRODUCT"
	CodeInvalidImage  = "INVALID_IMAGE"
	CodeImageTooSmall = "IMAGE_TOO_SMALL"
)

// IdentifyError is a typed failure from the identification endpoint
type IdentifyError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *IdentifyError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identification failed (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("identification failed (%d): %s", e.StatusCode, e.Message)
}

func NewIdentifyService(cfg *config.IdentifyConfig) *IdentifyService {
	return &IdentifyService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Identify sends image bytes (base64) upstream and returns the identification
// result. Failures come back as *IdentifyError for API-level rejections or a
// wrapped transport error for network problems; Classify buckets both.
func (s *IdentifyService) Identify(ctx context.Context, imageBase64, userID string) (*model.AIIdentificationResult, error) {
	reqBody := identifyRequest{
		Image:  imageBase64,
		UserID: userID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/products/identify", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result identifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode >= 500 {
			return nil, &IdentifyError{StatusCode: resp.StatusCode, Message: "upstream error"}
		}
		return nil, fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if !result.Success || resp.StatusCode != http.StatusOK {
		ierr := &IdentifyError{StatusCode: resp.StatusCode}
		if result.Error != nil {
			ierr.Code = result.Error.Code
			ierr.Message = result.Error.Message
		}
		return nil, ierr
	}

	if result.Product == nil {
		return nil, &IdentifyError{StatusCode: resp.StatusCode, Code: CodeNoProduct, Message: "empty identification result"}
	}

	return result.Product, nil
}

// Classify buckets an identification failure into the user-facing error
// category that drives retry messaging. Photo-quality rejections are "blur",
// other identification rejections are "not-found", and anything
// transport-level (network, timeout, 5xx) is "connection".
func Classify(err error) string {
	var ierr *IdentifyError
	if errors.As(err, &ierr) {
		switch {
		case ierr.StatusCode >= 500:
			return model.ScanErrorConnection
		case ierr.StatusCode == http.StatusBadRequest:
			switch ierr.Code {
			case CodeLowConfidence, CodeNoProduct, CodeInvalidImage, CodeImageTooSmall:
				return model.ScanErrorBlur
			}
			return model.ScanErrorNotFound
		case ierr.StatusCode == http.StatusNotFound:
			return model.ScanErrorNotFound
		default:
			return model.ScanErrorConnection
		}
	}
	// network error, timeout, context cancellation
	return model.ScanErrorConnection
}

package warranty

import (
	"testing"
	"time"

	"github.com/kp3ventures/coverkeep-backend/model"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		now           string
		end           string
		wantStatus    string
		wantRemaining int
	}{
		{
			name:          "well within warranty",
			now:           "2024-01-01T00:00:00Z",
			end:           "2024-12-31T00:00:00Z",
			wantStatus:    model.StatusActive,
			wantRemaining: 365,
		},
		{
			name:          "expires today is expiring-soon",
			now:           "2024-06-01T00:00:00Z",
			end:           "2024-06-01T00:00:00Z",
			wantStatus:    model.StatusExpiringSoon,
			wantRemaining: 0,
		},
		{
			name:          "expires later today rounds up",
			now:           "2024-06-01T08:00:00Z",
			end:           "2024-06-01T20:00:00Z",
			wantStatus:    model.StatusExpiringSoon,
			wantRemaining: 1,
		},
		{
			name:          "exactly 30 days is expiring-soon",
			now:           "2024-06-01T00:00:00Z",
			end:           "2024-07-01T00:00:00Z",
			wantStatus:    model.StatusExpiringSoon,
			wantRemaining: 30,
		},
		{
			name:          "31 days is active",
			now:           "2024-06-01T00:00:00Z",
			end:           "2024-07-02T00:00:00Z",
			wantStatus:    model.StatusActive,
			wantRemaining: 31,
		},
		{
			name:          "expired yesterday",
			now:           "2024-06-02T00:00:00Z",
			end:           "2024-06-01T00:00:00Z",
			wantStatus:    model.StatusExpired,
			wantRemaining: -1,
		},
		{
			name:          "expired a few hours ago still counts as today",
			now:           "2024-06-01T20:00:00Z",
			end:           "2024-06-01T08:00:00Z",
			wantStatus:    model.StatusExpiringSoon,
			wantRemaining: 0,
		},
		{
			name:          "long expired",
			now:           "2024-06-01T00:00:00Z",
			end:           "2023-06-01T00:00:00Z",
			wantStatus:    model.StatusExpired,
			wantRemaining: -366,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, remaining := Compute(date(tt.now), date(tt.end))
			if status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, status)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("Expected %d days remaining, got %d", tt.wantRemaining, remaining)
			}
		})
	}
}

func TestEndDate(t *testing.T) {
	purchase := date("2024-01-15T00:00:00Z")
	end := EndDate(purchase, 12)

	want := date("2025-01-15T00:00:00Z")
	if !end.Equal(want) {
		t.Errorf("Expected end date %v, got %v", want, end)
	}
}

// Purchase 2024-01-15 with a 12 month warranty, evaluated on 2024-12-20:
// 26 days remaining, expiring-soon.
func TestComputeFromDerivedEndDate(t *testing.T) {
	end := EndDate(date("2024-01-15T00:00:00Z"), 12)

	status, remaining := Compute(date("2024-12-20T00:00:00Z"), end)
	if remaining != 26 {
		t.Errorf("Expected 26 days remaining, got %d", remaining)
	}
	if status != model.StatusExpiringSoon {
		t.Errorf("Expected status %s, got %s", model.StatusExpiringSoon, status)
	}
}

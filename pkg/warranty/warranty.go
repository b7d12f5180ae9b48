package warranty

import (
	"time"

	"github.com/kp3ventures/coverkeep-backend/model"
)

// ExpiringSoonDays is the window, in days, within which a warranty is
// reported as expiring-soon rather than active.
const ExpiringSoonDays = 30

// Compute derives the warranty status and remaining days for a product given
// the current time. Fractional days round up toward more time remaining, so a
// warranty ending later today still counts as one that expires today rather
// than one already expired.
//
// Status must be recomputed on every query; "now" advances continuously and
// a cached status goes stale.
func Compute(now, warrantyEndDate time.Time) (status string, daysRemaining int) {
	remaining := warrantyEndDate.Sub(now)
	daysRemaining = int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		daysRemaining++
	}

	switch {
	case daysRemaining < 0:
		status = model.StatusExpired
	case daysRemaining <= ExpiringSoonDays:
		// daysRemaining == 0 (expires today) is expiring-soon, not expired
		status = model.StatusExpiringSoon
	default:
		status = model.StatusActive
	}
	return status, daysRemaining
}

// EndDate derives a warranty end date from the purchase date and warranty
// length in calendar months.
func EndDate(purchaseDate time.Time, months int) time.Time {
	return purchaseDate.AddDate(0, months, 0)
}

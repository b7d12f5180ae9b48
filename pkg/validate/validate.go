package validate

import (
	"regexp"
	"time"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	priceRe   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	barcodeRe = regexp.MustCompile(`^[0-9]{8,13}$`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
)

// Email reports whether s looks like an email address
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password checks password strength and returns the list of unmet rules
func Password(s string) (bool, []string) {
	var errs []string

	if len(s) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if !upperRe.MatchString(s) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(s) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(s) {
		errs = append(errs, "Password must contain at least one number")
	}

	return len(errs) == 0, errs
}

// Date reports whether s parses as an RFC 3339 timestamp or a plain date
func Date(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Price reports whether s is a decimal amount with at most two fraction digits
func Price(s string) bool {
	return priceRe.MatchString(s)
}

// Barcode reports whether s matches common retail barcode formats (EAN-8
// through EAN-13, UPC-A)
func Barcode(s string) bool {
	return barcodeRe.MatchString(s)
}

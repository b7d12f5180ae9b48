package validate

import (
	"testing"
)

func TestEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b@sub.domain.io", "x@y.co"}
	for _, s := range valid {
		if !Email(s) {
			t.Errorf("Expected %q to be a valid email", s)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("Expected %q to be an invalid email", s)
		}
	}
}

func TestPassword(t *testing.T) {
	ok, errs := Password("Str0ngpass")
	if !ok {
		t.Errorf("Expected valid password, got errors: %v", errs)
	}

	ok, errs = Password("weak")
	if ok {
		t.Fatal("Expected weak password to fail")
	}
	if len(errs) != 3 {
		t.Errorf("Expected 3 rule failures, got %d: %v", len(errs), errs)
	}

	ok, errs = Password("alllowercase1")
	if ok {
		t.Fatal("Expected password without uppercase to fail")
	}
	if len(errs) != 1 {
		t.Errorf("Expected 1 rule failure, got %d: %v", len(errs), errs)
	}
}

func TestDate(t *testing.T) {
	if !Date("2024-01-15") {
		t.Error("Expected plain date to be valid")
	}
	if !Date("2024-01-15T10:30:00Z") {
		t.Error("Expected RFC 3339 timestamp to be valid")
	}
	if Date("15/01/2024") {
		t.Error("Expected slash date to be invalid")
	}
	if Date("not a date") {
		t.Error("Expected garbage to be invalid")
	}
}

func TestPrice(t *testing.T) {
	valid := []string{"0", "199", "199.99", "5.5"}
	for _, s := range valid {
		if !Price(s) {
			t.Errorf("Expected %q to be a valid price", s)
		}
	}

	invalid := []string{"", "-5", "1.999", "12,50", "free"}
	for _, s := range invalid {
		if Price(s) {
			t.Errorf("Expected %q to be an invalid price", s)
		}
	}
}

func TestBarcode(t *testing.T) {
	valid := []string{"12345678", "123456789012", "1234567890123"}
	for _, s := range valid {
		if !Barcode(s) {
			t.Errorf("Expected %q to be a valid barcode", s)
		}
	}

	invalid := []string{"", "1234567", "12345678901234", "ABCDEFGH"}
	for _, s := range invalid {
		if Barcode(s) {
			t.Errorf("Expected %q to be an invalid barcode", s)
		}
	}
}

package model

import (
	"time"
)

// Product represents a registered consumer product and its warranty coverage
type Product struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Category        string    `json:"category"`
	PurchaseDate    time.Time `json:"purchaseDate"`
	WarrantyEndDate time.Time `json:"warrantyEndDate"`
	WarrantyLength  int       `json:"warrantyLength"` // months
	Price           float64   `json:"price,omitempty"`
	Retailer        string    `json:"retailer,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	ReceiptImageURL string    `json:"receiptImageUrl,omitempty"`
	Barcode         string    `json:"barcode,omitempty"`
	Status          string    `json:"status"` // derived, never authoritative
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Warranty status constants
const (
	StatusActive       = "active"
	StatusExpiringSoon = "expiring-soon"
	StatusExpired      = "expired"
)

// Filter values for the product catalog
const (
	FilterAll          = "all"
	FilterActive       = StatusActive
	FilterExpiringSoon = StatusExpiringSoon
	FilterExpired      = StatusExpired
)

// ValidFilter reports whether f is a recognized catalog filter
func ValidFilter(f string) bool {
	switch f {
	case FilterAll, FilterActive, FilterExpiringSoon, FilterExpired:
		return true
	}
	return false
}

// ProductPatch is a partial update; nil fields are left untouched
type ProductPatch struct {
	Name            *string    `json:"name"`
	Brand           *string    `json:"brand"`
	Category        *string    `json:"category"`
	PurchaseDate    *time.Time `json:"purchaseDate"`
	WarrantyEndDate *time.Time `json:"warrantyEndDate"`
	WarrantyLength  *int       `json:"warrantyLength"`
	Price           *float64   `json:"price"`
	Retailer        *string    `json:"retailer"`
	ImageURL        *string    `json:"imageUrl"`
	ReceiptImageURL *string    `json:"receiptImageUrl"`
	Barcode         *string    `json:"barcode"`
}

package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/kp3ventures/coverkeep-backend/model"
	"github.com/kp3ventures/coverkeep-backend/pkg/warranty"
)

// ErrNotFound is returned when an operation names a product or claim id that
// is not in the working set
var ErrNotFound = errors.New("not found")

// ProductStore is the in-memory catalog of registered products.
// The backing collection for each user lives server-side; this store holds
// the working set for active sessions.
type ProductStore struct {
	products map[string]*model.Product
	filter   string
	mu       sync.RWMutex
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]*model.Product),
		filter:   model.FilterAll,
	}
}

// SetAll replaces the working set with the given products
func (s *ProductStore) SetAll(products []*model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[string]*model.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// Add appends a product. Callers are responsible for supplying a unique id;
// no de-duplication is enforced here.
func (s *ProductStore) Add(product *model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.UpdatedAt = time.Now()
	s.products[product.ID] = product
}

// Update applies a partial patch to the product with the given id.
// Fields absent from the patch are untouched. Returns ErrNotFound for an
// unknown id rather than silently ignoring it.
func (s *ProductStore) Update(id string, patch *model.ProductPatch) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.PurchaseDate != nil {
		p.PurchaseDate = *patch.PurchaseDate
	}
	if patch.WarrantyEndDate != nil {
		p.WarrantyEndDate = *patch.WarrantyEndDate
	}
	if patch.WarrantyLength != nil {
		p.WarrantyLength = *patch.WarrantyLength
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Retailer != nil {
		p.Retailer = *patch.Retailer
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.ReceiptImageURL != nil {
		p.ReceiptImageURL = *patch.ReceiptImageURL
	}
	if patch.Barcode != nil {
		p.Barcode = *patch.Barcode
	}
	p.UpdatedAt = time.Now()

	return p, nil
}

// Remove deletes a product. Irreversible; there is no undo.
func (s *ProductStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// SetFilter sets the active status filter. Unknown values fall back to "all".
func (s *ProductStore) SetFilter(filter string) {
	if !model.ValidFilter(filter) {
		filter = model.FilterAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// Filter returns the active status filter
func (s *ProductStore) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Filtered returns the user's products matching the active filter, sorted by
// creation time. Status is re-derived per product against now on every call;
// the stored status field is display state, never ground truth.
func (s *ProductStore) Filtered(userID string, now time.Time) []*model.Product {
	// full lock: derived status is written back onto the products
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*model.Product
	for _, p := range s.products {
		if p.UserID != userID {
			continue
		}
		status, _ := warranty.Compute(now, p.WarrantyEndDate)
		p.Status = status
		if s.filter != model.FilterAll && status != s.filter {
			continue
		}
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// ByID returns the product with the given id, or nil, refreshing its derived
// status
func (s *ProductStore) ByID(id string, now time.Time) *model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.products[id]
	if p != nil {
		p.Status, _ = warranty.Compute(now, p.WarrantyEndDate)
	}
	return p
}

// Count returns the number of products in the store
func (s *ProductStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

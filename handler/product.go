package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kp3ventures/coverkeep-backend/middleware"
	"github.com/kp3ventures/coverkeep-backend/model"
	"github.com/kp3ventures/coverkeep-backend/pkg/logger"
	"github.com/kp3ventures/coverkeep-backend/pkg/validate"
	"github.com/kp3ventures/coverkeep-backend/pkg/warranty"
	"github.com/kp3ventures/coverkeep-backend/service"
)

type ProductHandler struct {
	store       *service.ProductStore
	identifySvc *service.IdentifyService
	mediaSvc    *service.MediaService
	scans       *service.ScanFlows
}

func NewProductHandler(store *service.ProductStore, identifySvc *service.IdentifyService, mediaSvc *service.MediaService, scans *service.ScanFlows) *ProductHandler {
	return &ProductHandler{
		store:       store,
		identifySvc: identifySvc,
		mediaSvc:    mediaSvc,
		scans:       scans,
	}
}

type CreateProductRequest struct {
	Name            string     `json:"name" binding:"required"`
	Brand           string     `json:"brand" binding:"required"`
	Category        string     `json:"category"`
	PurchaseDate    time.Time  `json:"purchaseDate" binding:"required"`
	WarrantyEndDate *time.Time `json:"warrantyEndDate"`
	WarrantyLength  int        `json:"warrantyLength"`
	Price           float64    `json:"price"`
	Retailer        string     `json:"retailer"`
	Barcode         string     `json:"barcode"`
}

// List returns the user's products, optionally narrowed by ?status=
func (h *ProductHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if f := c.Query("status"); f != "" {
		if !model.ValidFilter(f) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		h.store.SetFilter(f)
	} else {
		h.store.SetFilter(model.FilterAll)
	}

	products := h.store.Filtered(userID, time.Now())
	if products == nil {
		products = []*model.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns a single product with its freshly derived status
func (h *ProductHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	product := h.store.ByID(id, time.Now())
	if product == nil || product.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Create registers a new product. The warranty end date is derived from the
// purchase date and warranty length when not supplied explicitly; once both
// exist, the stored end date wins for status purposes.
func (h *ProductHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required product fields"})
		return
	}

	if req.WarrantyEndDate == nil && req.WarrantyLength <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either warrantyEndDate or warrantyLength is required"})
		return
	}
	if req.Barcode != "" && !validate.Barcode(req.Barcode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid barcode"})
		return
	}

	endDate := warranty.EndDate(req.PurchaseDate, req.WarrantyLength)
	if req.WarrantyEndDate != nil {
		endDate = *req.WarrantyEndDate
	}

	now := time.Now()
	product := &model.Product{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            req.Name,
		Brand:           req.Brand,
		Category:        req.Category,
		PurchaseDate:    req.PurchaseDate,
		WarrantyEndDate: endDate,
		WarrantyLength:  req.WarrantyLength,
		Price:           req.Price,
		Retailer:        req.Retailer,
		Barcode:         req.Barcode,
		CreatedAt:       now,
	}
	product.Status, _ = warranty.Compute(now, endDate)

	h.store.Add(product)

	logger.Info(c.Request.Context(), "product registered",
		"product_id", product.ID,
		"warranty_end", product.WarrantyEndDate,
	)

	c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	existing := h.store.ByID(id, time.Now())
	if existing == nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var patch model.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.store.Update(id, &patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	updated.Status, _ = warranty.Compute(time.Now(), updated.WarrantyEndDate)
	c.JSON(http.StatusOK, updated)
}

// Delete removes a product permanently
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	existing := h.store.ByID(id, time.Now())
	if existing == nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.store.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type IdentifyProductRequest struct {
	Image string `json:"image" binding:"required"` // base64
}

// Identify proxies a photo to the AI identification service. At most one
// request per user is in flight at a time; a second one gets 409. On success
// the response carries the result, its confidence tier, and the pre-filled
// product form the client folds into manual entry.
func (h *ProductHandler) Identify(c *gin.Context) {
	userID := middleware.GetUserID(c)
	flow := h.scans.ForUser(userID)

	var req IdentifyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}

	if err := flow.BeginProcessing(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Identification already in progress"})
		return
	}

	result, err := h.identifySvc.Identify(c.Request.Context(), req.Image, userID)
	if err != nil {
		category := service.Classify(err)
		flow.SetError(category)

		logger.Warn(c.Request.Context(), "identification failed",
			"category", category,
			"error", err,
		)

		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   gin.H{"category": category},
		})
		return
	}

	flow.SetResult(result)

	// the fold is advisory pre-fill; the user still reviews and submits
	form, err := flow.Confirm()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"product":    result,
		"confidence": model.ConfidenceTier(result.Confidence),
		"form":       form,
	})
}

// UploadPhoto stores a product or receipt photo and records its URL on the
// product. ?kind=receipt selects the receipt slot; anything else is the
// product photo.
func (h *ProductHandler) UploadPhoto(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	product := h.store.ByID(id, time.Now())
	if product == nil || product.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG and PNG photos are allowed"})
		return
	}

	kind := service.PhotoProduct
	if c.Query("kind") == "receipt" {
		kind = service.PhotoReceipt
	}

	objectName := h.mediaSvc.ObjectName(userID, id, kind, header.Filename)
	if err := h.mediaSvc.UploadPhoto(c.Request.Context(), objectName, file, header.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo: " + err.Error()})
		return
	}

	url, err := h.mediaSvc.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}

	patch := &model.ProductPatch{}
	if kind == service.PhotoReceipt {
		patch.ReceiptImageURL = &url
	} else {
		patch.ImageURL = &url
	}
	if _, err := h.store.Update(id, patch); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "kind": kind})
}

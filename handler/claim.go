package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kp3ventures/coverkeep-backend/middleware"
	"github.com/kp3ventures/coverkeep-backend/model"
	"github.com/kp3ventures/coverkeep-backend/pkg/logger"
	"github.com/kp3ventures/coverkeep-backend/service"
)

type ClaimHandler struct {
	sessions  *service.ClaimSessions
	store     *service.ProductStore
	assistant *service.Assistant
}

func NewClaimHandler(sessions *service.ClaimSessions, store *service.ProductStore, assistant *service.Assistant) *ClaimHandler {
	return &ClaimHandler{
		sessions:  sessions,
		store:     store,
		assistant: assistant,
	}
}

// List returns the user's current claim session, if any
func (h *ClaimHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	session := h.sessions.Current(userID)
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"claims": []*model.WarrantyClaim{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claims":     []*model.WarrantyClaim{session.Claim},
		"transcript": session.Transcript,
	})
}

type CreateDraftRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// CreateDraft opens a claim-filing session for a product
func (h *ClaimHandler) CreateDraft(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	product := h.store.ByID(req.ProductID, time.Now())
	if product == nil || product.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	session, err := h.sessions.Start(userID, product)
	if err != nil {
		if errors.Is(err, service.ErrSessionActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "A claim session is already active for another product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start claim session"})
		return
	}

	logger.Info(c.Request.Context(), "claim session started",
		"claim_id", session.Claim.ID,
		"product_id", product.ID,
	)

	c.JSON(http.StatusCreated, gin.H{
		"claim":      session.Claim,
		"transcript": session.Transcript,
	})
}

type AssistRequest struct {
	Message string `json:"message" binding:"required"`
}

// Assist records a user message on the current claim and replies with the
// scripted assistant's guidance. Both sides of the exchange land on the
// transcript; the user text also becomes the claim's issue description.
func (h *ClaimHandler) Assist(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if _, err := h.sessions.RecordUserMessage(userID, req.Message); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active claim session"})
		return
	}

	reply := h.assistant.Respond(req.Message)
	msg, err := h.sessions.RecordAssistantMessage(userID, reply)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active claim session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Submit moves the current claim from draft to submitted
func (h *ClaimHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	session := h.sessions.Current(userID)
	if session == nil || session.Claim.ID != id {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	claim, err := h.sessions.Submit(userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Claim is not in draft state"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	logger.Info(c.Request.Context(), "claim submitted", "claim_id", claim.ID)

	c.JSON(http.StatusOK, claim)
}

type UpdateClaimRequest struct {
	Status    *string  `json:"status"`
	Notes     *string  `json:"notes"`
	Documents []string `json:"documents"`
}

// Update patches the current claim: notes and documents directly, status only
// by reflecting a server-asserted progression (in-progress/approved/rejected)
func (h *ClaimHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	session := h.sessions.Current(userID)
	if session == nil || session.Claim.ID != id {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	var req UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status != nil {
		if _, err := h.sessions.Reflect(userID, *req.Status); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Status transition not allowed"})
			return
		}
	}

	claim, err := h.sessions.Annotate(userID, req.Notes, req.Documents)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		return
	}

	c.JSON(http.StatusOK, claim)
}

// End discards the current claim session, transcript included. An
// unsubmitted draft is lost.
func (h *ClaimHandler) End(c *gin.Context) {
	userID := middleware.GetUserID(c)

	h.sessions.End(userID)

	c.JSON(http.StatusOK, gin.H{"ended": true})
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"letterforge/internal/app"
	"letterforge/internal/billing"
	"letterforge/internal/store"
	"letterforge/internal/transport/http/response"
)

type BillingHandler struct {
	billing  *app.BillingService
	payments *billing.Client
}

type CheckoutRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
}

func NewBillingHandler(billingService *app.BillingService, payments *billing.Client) *BillingHandler {
	return &BillingHandler{billing: billingService, payments: payments}
}

func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request payload")
		return
	}

	session, err := h.billing.CreateCheckout(c.Request.Context(), req.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "document id required")
		case errors.Is(err, store.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found or expired")
		case errors.Is(err, app.ErrAlreadyPaid):
			response.Error(c, http.StatusBadRequest, response.CodeAlreadyPaid, "document already purchased")
		case errors.Is(err, app.ErrBillingUnavailable):
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "payment system not configured")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "create checkout failed")
		}
		return
	}

	response.OK(c, session)
}

// Webhook verifies the provider signature over the raw body, then processes
// the event. Only signature or payload problems get a 400; after
// verification every outcome is a 200 acknowledgment so the provider's
// retry machinery is never triggered by storage limitations here.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "unreadable payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "missing signature")
		return
	}

	event, err := h.payments.VerifyWebhook(payload, signature)
	if err != nil {
		log.Printf("webhook verification failed: %v", err)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid signature")
		return
	}

	if err := h.billing.HandleEvent(c.Request.Context(), *event); err != nil {
		log.Printf("webhook processing failed (acknowledged anyway): %v", err)
	}

	response.OK(c, gin.H{"received": true})
}

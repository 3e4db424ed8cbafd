package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"letterforge/internal/app"
	"letterforge/internal/email"
	"letterforge/internal/store"
	"letterforge/internal/transport/http/response"
)

type DeliveryHandler struct {
	delivery *app.DeliveryService
}

type ExportRequest struct {
	DocumentID    string `json:"document_id" binding:"required"`
	LetterText    string `json:"letter_text"`
	ApplicantName string `json:"applicant_name"`
}

type SendEmailRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Email      string `json:"email" binding:"required"`
	LetterText string `json:"letter_text"`
}

func NewDeliveryHandler(delivery *app.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{delivery: delivery}
}

func (h *DeliveryHandler) ExportPDF(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request payload")
		return
	}

	result, err := h.delivery.Export(c.Request.Context(), app.ExportInput{
		DocumentID:    req.DocumentID,
		LetterText:    req.LetterText,
		ApplicantName: req.ApplicantName,
	})
	if err != nil {
		h.writeDeliveryError(c, err, "export pdf failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *DeliveryHandler) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request payload")
		return
	}

	emailID, err := h.delivery.Send(c.Request.Context(), app.SendInput{
		DocumentID: req.DocumentID,
		Recipient:  req.Email,
		LetterText: req.LetterText,
	})
	if err != nil {
		if errors.Is(err, email.ErrInvalidRecipient) {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid email address")
			return
		}
		h.writeDeliveryError(c, err, "send email failed")
		return
	}

	response.OK(c, gin.H{"email_id": emailID})
}

func (h *DeliveryHandler) writeDeliveryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "document id required")
	case errors.Is(err, store.ErrDocumentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found or expired")
	case errors.Is(err, app.ErrPaymentRequired):
		response.Error(c, http.StatusPaymentRequired, response.CodePaymentRequired, "document has not been purchased")
	case errors.Is(err, app.ErrEmailUnavailable):
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "email delivery not configured")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, fallback)
	}
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"letterforge/internal/app"
	"letterforge/internal/model"
	"letterforge/internal/store"
	"letterforge/internal/transport/http/response"
)

type DocumentHandler struct {
	letters *app.LetterService
}

type verifiedDocument struct {
	Sections    []model.Section `json:"sections"`
	RawText     string          `json:"raw_text"`
	GeneratedAt time.Time       `json:"generated_at"`
}

func NewDocumentHandler(letters *app.LetterService) *DocumentHandler {
	return &DocumentHandler{letters: letters}
}

// Verify reports payment state and releases content only for paid records.
// An unpaid record yields a null document, never a partial one.
func (h *DocumentHandler) Verify(c *gin.Context) {
	id := c.Param("id")

	result, err := h.letters.Verify(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "document id required")
		case errors.Is(err, store.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found or expired")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "verify document failed")
		}
		return
	}

	var doc *verifiedDocument
	if result.IsPaid {
		doc = &verifiedDocument{
			Sections:    result.Sections,
			RawText:     result.RawText,
			GeneratedAt: result.GeneratedAt,
		}
	}
	response.OK(c, gin.H{
		"is_paid":  result.IsPaid,
		"document": doc,
	})
}

// MarkPaid is the redirect-completion step used by non-production flows; in
// production the webhook performs the same transition.
func (h *DocumentHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")

	if err := h.letters.MarkPaid(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "document id required")
		case errors.Is(err, store.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found or expired")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "mark document paid failed")
		}
		return
	}

	response.OK(c, gin.H{
		"document_id": id,
		"is_paid":     true,
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.letters.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "document id required")
		case errors.Is(err, store.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "document not found or expired")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "delete document failed")
		}
		return
	}

	response.OK(c, gin.H{"deleted_document_id": id})
}

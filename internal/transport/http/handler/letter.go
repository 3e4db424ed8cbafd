package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"letterforge/internal/app"
	"letterforge/internal/model"
	"letterforge/internal/transport/http/response"
)

type LetterHandler struct {
	letters *app.LetterService
}

type GenerateRequest struct {
	Form model.LetterForm `json:"form" binding:"required"`
}

type generatedDocument struct {
	Sections    []model.Section `json:"sections"`
	RawText     string          `json:"raw_text"`
	GeneratedAt time.Time       `json:"generated_at"`
}

func NewLetterHandler(letters *app.LetterService) *LetterHandler {
	return &LetterHandler{letters: letters}
}

func (h *LetterHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid request payload")
		return
	}

	result, err := h.letters.Generate(c.Request.Context(), req.Form)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		case errors.Is(err, app.ErrGenerationFailed):
			response.Error(c, http.StatusInternalServerError, response.CodeGenerationError, "failed to generate letter")
		case errors.Is(err, app.ErrStorageFailed):
			response.Error(c, http.StatusInternalServerError, response.CodeStorageError, "failed to store document")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "generate letter failed")
		}
		return
	}

	response.OK(c, gin.H{
		"document_id": result.DocumentID,
		"document": generatedDocument{
			Sections:    result.Sections,
			RawText:     result.RawText,
			GeneratedAt: result.GeneratedAt,
		},
	})
}

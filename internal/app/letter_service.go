package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"letterforge/internal/ai"
	"letterforge/internal/letter"
	"letterforge/internal/model"
	"letterforge/internal/store"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrGenerationFailed = errors.New("letter generation failed")
	ErrStorageFailed    = errors.New("document storage failed")
)

// LetterService orchestrates the generation flow: validate the form, build
// the prompt, run the provider chain, parse sections, store the unpaid
// record. Nothing is stored when generation fails.
type LetterService struct {
	store             store.DocumentStore
	chain             *ai.Chain
	maxTokens         int
	temperature       float64
	minExplanationLen int
}

type GenerateResult struct {
	DocumentID  string          `json:"document_id"`
	Sections    []model.Section `json:"sections"`
	RawText     string          `json:"raw_text"`
	GeneratedAt time.Time       `json:"generated_at"`
	Provider    string          `json:"-"`
}

type VerifyResult struct {
	IsPaid      bool
	Sections    []model.Section
	RawText     string
	GeneratedAt time.Time
}

func NewLetterService(docStore store.DocumentStore, chain *ai.Chain, maxTokens int, temperature float64, minExplanationLen int) *LetterService {
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	if minExplanationLen <= 0 {
		minExplanationLen = 50
	}
	return &LetterService{
		store:             docStore,
		chain:             chain,
		maxTokens:         maxTokens,
		temperature:       temperature,
		minExplanationLen: minExplanationLen,
	}
}

func (s *LetterService) Generate(ctx context.Context, form model.LetterForm) (*GenerateResult, error) {
	normalized, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}

	prompt := letter.BuildPrompt(letter.PromptInput{
		Form:       normalized,
		LetterDate: time.Now().Format("January 2, 2006"),
	})

	rawText, provider, err := s.chain.Complete(ctx, ai.GenerateRequest{
		System:      letter.SystemPrompt,
		Prompt:      prompt,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	sections := letter.ParseSections(rawText)

	id := store.NewDocumentID()
	record := model.DocumentRecord{
		Sections: sections,
		RawText:  rawText,
		Form:     normalized,
		IsPaid:   false,
	}
	if err := s.store.Create(ctx, id, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	stored, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	return &GenerateResult{
		DocumentID:  id,
		Sections:    sections,
		RawText:     rawText,
		GeneratedAt: stored.GeneratedAt,
		Provider:    provider,
	}, nil
}

// Verify returns the payment state and, only for paid documents, the
// content. Unpaid content never leaves this method.
func (s *LetterService) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{IsPaid: record.IsPaid}
	if record.IsPaid {
		result.Sections = record.Sections
		result.RawText = record.RawText
		result.GeneratedAt = record.GeneratedAt
	}
	return result, nil
}

func (s *LetterService) MarkPaid(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.store.MarkPaid(ctx, id)
}

func (s *LetterService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

func (s *LetterService) validateForm(form model.LetterForm) (model.LetterForm, error) {
	form.AboutYou.FullName = strings.TrimSpace(form.AboutYou.FullName)
	form.AboutYou.CitizenshipCountry = strings.TrimSpace(form.AboutYou.CitizenshipCountry)
	form.AboutYou.CurrentCountry = strings.TrimSpace(form.AboutYou.CurrentCountry)
	form.Application.ApplicationType = strings.TrimSpace(form.Application.ApplicationType)
	form.Application.TargetCountry = strings.TrimSpace(form.Application.TargetCountry)
	form.Explanation.Main = strings.TrimSpace(form.Explanation.Main)
	form.Tone = strings.TrimSpace(strings.ToLower(form.Tone))
	form.Template = strings.TrimSpace(strings.ToLower(form.Template))

	if len(form.AboutYou.FullName) < 2 {
		return form, fmt.Errorf("%w: full name must be at least 2 characters", ErrInvalidInput)
	}
	if form.AboutYou.CitizenshipCountry == "" {
		return form, fmt.Errorf("%w: citizenship country is required", ErrInvalidInput)
	}
	if form.AboutYou.CurrentCountry == "" {
		return form, fmt.Errorf("%w: current country is required", ErrInvalidInput)
	}
	if form.Application.ApplicationType == "" {
		return form, fmt.Errorf("%w: application type is required", ErrInvalidInput)
	}
	if form.Application.TargetCountry == "" {
		return form, fmt.Errorf("%w: target country is required", ErrInvalidInput)
	}
	if len(form.Explanation.Main) < s.minExplanationLen {
		return form, fmt.Errorf("%w: explanation must be at least %d characters", ErrInvalidInput, s.minExplanationLen)
	}
	if !contains(letter.Tones(), form.Tone) {
		return form, fmt.Errorf("%w: tone must be one of %s", ErrInvalidInput, strings.Join(letter.Tones(), ", "))
	}
	if !contains(letter.Templates(), form.Template) {
		return form, fmt.Errorf("%w: template must be one of %s", ErrInvalidInput, strings.Join(letter.Templates(), ", "))
	}
	return form, nil
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

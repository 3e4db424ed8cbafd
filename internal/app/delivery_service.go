package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"letterforge/internal/model"
	"letterforge/internal/pdf"
	"letterforge/internal/store"
)

var (
	ErrPaymentRequired  = errors.New("document not paid")
	ErrEmailUnavailable = errors.New("email delivery not configured")
)

// LetterMailer sends a finished letter and returns the provider message id.
type LetterMailer interface {
	SendLetter(ctx context.Context, job model.EmailJob) (string, error)
}

// DeliveryService serves the post-purchase exits: PDF export and email. Both
// accept the buyer's edited text, which is never written back into the
// store; the stored raw text remains the immutable original.
type DeliveryService struct {
	store  store.DocumentStore
	mailer LetterMailer // nil when email is disabled
}

type ExportInput struct {
	DocumentID    string
	LetterText    string
	ApplicantName string
}

type ExportResult struct {
	Filename string
	Content  []byte
}

type SendInput struct {
	DocumentID string
	Recipient  string
	LetterText string
}

func NewDeliveryService(docStore store.DocumentStore, mailer LetterMailer) *DeliveryService {
	return &DeliveryService{store: docStore, mailer: mailer}
}

func (s *DeliveryService) Export(ctx context.Context, in ExportInput) (*ExportResult, error) {
	record, err := s.paidRecord(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	text := in.LetterText
	if strings.TrimSpace(text) == "" {
		text = record.RawText
	}
	name := strings.TrimSpace(in.ApplicantName)
	if name == "" {
		name = record.Form.AboutYou.FullName
	}

	content, err := pdf.Render(text, name, record.GeneratedAt)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename: pdf.Filename(name, time.Now()),
		Content:  content,
	}, nil
}

func (s *DeliveryService) Send(ctx context.Context, in SendInput) (string, error) {
	record, err := s.paidRecord(ctx, in.DocumentID)
	if err != nil {
		return "", err
	}
	if s.mailer == nil {
		return "", ErrEmailUnavailable
	}

	text := in.LetterText
	if strings.TrimSpace(text) == "" {
		text = record.RawText
	}

	return s.mailer.SendLetter(ctx, model.EmailJob{
		DocumentID:    in.DocumentID,
		Recipient:     strings.TrimSpace(in.Recipient),
		ApplicantName: record.Form.AboutYou.FullName,
		LetterText:    text,
	})
}

func (s *DeliveryService) paidRecord(ctx context.Context, id string) (*model.DocumentRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsPaid {
		return nil, ErrPaymentRequired
	}
	return record, nil
}

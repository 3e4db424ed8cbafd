package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"letterforge/internal/model"
	"letterforge/internal/store"
)

type stubMailer struct {
	jobs []model.EmailJob
	err  error
}

func (m *stubMailer) SendLetter(_ context.Context, job model.EmailJob) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.jobs = append(m.jobs, job)
	return "email_123", nil
}

func TestDeliveryService_ExportUnpaid(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	svc := NewDeliveryService(docs, nil)

	_, err := svc.Export(context.Background(), ExportInput{DocumentID: id})
	require.ErrorIs(t, err, ErrPaymentRequired)
}

func TestDeliveryService_ExportPaid(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	require.NoError(t, docs.MarkPaid(context.Background(), id))
	svc := NewDeliveryService(docs, nil)

	result, err := svc.Export(context.Background(), ExportInput{DocumentID: id})
	require.NoError(t, err)
	require.True(t, len(result.Content) > 4)
	require.Equal(t, "%PDF", string(result.Content[:4]))
	require.Contains(t, result.Filename, "jane_doe")
	require.Contains(t, result.Filename, ".pdf")
}

func TestDeliveryService_ExportUsesEditedText(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	require.NoError(t, docs.MarkPaid(context.Background(), id))
	svc := NewDeliveryService(docs, nil)

	edited := "My edited letter text."
	result, err := svc.Export(context.Background(), ExportInput{
		DocumentID: id,
		LetterText: edited,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	// the edit is never written back
	record, err := docs.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotEqual(t, edited, record.RawText)
}

func TestDeliveryService_ExportUnknownDocument(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	svc := NewDeliveryService(docs, nil)

	_, err := svc.Export(context.Background(), ExportInput{DocumentID: "doc_0_missing"})
	require.ErrorIs(t, err, store.ErrDocumentNotFound)
}

func TestDeliveryService_SendUnpaid(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	svc := NewDeliveryService(docs, &stubMailer{})

	_, err := svc.Send(context.Background(), SendInput{
		DocumentID: id,
		Recipient:  "jane@example.com",
	})
	require.ErrorIs(t, err, ErrPaymentRequired)
}

func TestDeliveryService_SendPaid(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	require.NoError(t, docs.MarkPaid(context.Background(), id))
	mailer := &stubMailer{}
	svc := NewDeliveryService(docs, mailer)

	emailID, err := svc.Send(context.Background(), SendInput{
		DocumentID: id,
		Recipient:  "jane@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "email_123", emailID)

	require.Len(t, mailer.jobs, 1)
	require.Equal(t, "jane@example.com", mailer.jobs[0].Recipient)
	require.Equal(t, "Jane Doe", mailer.jobs[0].ApplicantName)
}

func TestDeliveryService_SendNoMailer(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	require.NoError(t, docs.MarkPaid(context.Background(), id))
	svc := NewDeliveryService(docs, nil)

	_, err := svc.Send(context.Background(), SendInput{
		DocumentID: id,
		Recipient:  "jane@example.com",
	})
	require.ErrorIs(t, err, ErrEmailUnavailable)
}

func TestDeliveryService_SendMailerFailure(t *testing.T) {
	docs := store.NewMemoryStore(time.Hour)
	id := seedDocument(t, docs)
	require.NoError(t, docs.MarkPaid(context.Background(), id))
	sendErr := errors.New("provider down")
	svc := NewDeliveryService(docs, &stubMailer{err: sendErr})

	_, err := svc.Send(context.Background(), SendInput{
		DocumentID: id,
		Recipient:  "jane@example.com",
	})
	require.ErrorIs(t, err, sendErr)
}

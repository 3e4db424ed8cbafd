package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"letterforge/internal/billing"
	"letterforge/internal/model"
	"letterforge/internal/repository"
	"letterforge/internal/store"
)

var (
	ErrAlreadyPaid        = errors.New("document already purchased")
	ErrBillingUnavailable = errors.New("payment system not configured")
)

// EmailDispatcher hands a letter delivery job off for sending. Backed by the
// rabbitmq publisher when a queue is configured, by the inline sender
// otherwise, and nil when email is disabled entirely.
type EmailDispatcher interface {
	Publish(ctx context.Context, job model.EmailJob) error
}

// BillingService owns checkout creation and webhook processing. Webhook
// processing never fails outward: once the signature checked out, every
// outcome is an acknowledgment so the provider does not redeliver because of
// storage limitations on this side.
type BillingService struct {
	store      store.DocumentStore
	payments   *billing.Client
	events     *repository.BillingEventRepository // nil when mysql is disabled
	dispatcher EmailDispatcher                    // nil when email is disabled
}

func NewBillingService(
	docStore store.DocumentStore,
	payments *billing.Client,
	events *repository.BillingEventRepository,
	dispatcher EmailDispatcher,
) *BillingService {
	return &BillingService{
		store:      docStore,
		payments:   payments,
		events:     events,
		dispatcher: dispatcher,
	}
}

func (s *BillingService) CreateCheckout(ctx context.Context, documentID string) (*billing.CheckoutSession, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrInvalidInput
	}

	record, err := s.store.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if record.IsPaid {
		return nil, ErrAlreadyPaid
	}

	if s.payments == nil || !s.payments.Configured() {
		return nil, ErrBillingUnavailable
	}
	return s.payments.CreateCheckoutSession(documentID)
}

// HandleEvent processes a signature-verified payment event. The returned
// error signals only that something unexpected should be logged; the caller
// acknowledges the delivery either way.
func (s *BillingService) HandleEvent(ctx context.Context, event billing.PaymentEvent) error {
	if s.events != nil {
		fresh, err := s.events.Record(&model.BillingEvent{
			Provider:        "stripe",
			ProviderEventID: event.ID,
			EventType:       event.Type,
			DocumentID:      event.DocumentID,
			PayerEmail:      event.PayerEmail,
		})
		if err != nil {
			log.Printf("record billing event %s failed: %v", event.ID, err)
		} else if !fresh {
			log.Printf("billing event %s already processed, skipping", event.ID)
			return nil
		}
	}

	if event.Type != billing.EventTypeCheckoutCompleted {
		return nil
	}
	if event.DocumentID == "" {
		log.Printf("billing event %s carries no document id", event.ID)
		return nil
	}

	if err := s.store.MarkPaid(ctx, event.DocumentID); err != nil {
		// Most likely the record expired before the confirmation arrived.
		// Acknowledge anyway; nothing is recreated.
		s.recordOutcome(event, err.Error())
		return fmt.Errorf("mark document %s paid failed: %w", event.DocumentID, err)
	}

	log.Printf("payment confirmed, document %s unlocked (amount=%d %s)",
		event.DocumentID, event.AmountTotal, event.Currency)

	if event.PayerEmail != "" && s.dispatcher != nil {
		if err := s.dispatchLetter(ctx, event); err != nil {
			log.Printf("dispatch letter email for %s failed: %v", event.DocumentID, err)
		}
	}

	s.recordOutcome(event, "")
	return nil
}

func (s *BillingService) dispatchLetter(ctx context.Context, event billing.PaymentEvent) error {
	record, err := s.store.Get(ctx, event.DocumentID)
	if err != nil {
		return err
	}
	return s.dispatcher.Publish(ctx, model.EmailJob{
		DocumentID:    event.DocumentID,
		Recipient:     event.PayerEmail,
		ApplicantName: record.Form.AboutYou.FullName,
		LetterText:    record.RawText,
	})
}

func (s *BillingService) recordOutcome(event billing.PaymentEvent, processingError string) {
	if s.events == nil {
		return
	}
	if err := s.events.MarkProcessed("stripe", event.ID, processingError); err != nil {
		log.Printf("mark billing event %s processed failed: %v", event.ID, err)
	}
}

package model

import "time"

// BillingEvent records verified payment-provider webhook deliveries so
// processing stays idempotent across redeliveries.
type BillingEvent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Provider        string    `gorm:"size:20;not null;uniqueIndex:ux_billing_events_provider_event,priority:1" json:"provider"`
	ProviderEventID string    `gorm:"size:191;not null;uniqueIndex:ux_billing_events_provider_event,priority:2" json:"provider_event_id"`
	EventType       string    `gorm:"size:100;not null;index" json:"event_type"`
	DocumentID      string    `gorm:"size:64;index" json:"document_id"`
	PayerEmail      string    `gorm:"size:255" json:"payer_email"`
	Processed       bool      `gorm:"not null;default:false" json:"processed"`
	ProcessingError string    `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

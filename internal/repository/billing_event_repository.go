package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"letterforge/internal/model"
)

type BillingEventRepository struct {
	db *gorm.DB
}

func NewBillingEventRepository(db *gorm.DB) *BillingEventRepository {
	return &BillingEventRepository{db: db}
}

// Record inserts the event unless the (provider, event id) pair was seen
// before. Returns false for a duplicate delivery so the caller can skip
// reprocessing.
func (r *BillingEventRepository) Record(event *model.BillingEvent) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(event)
	if result.Error != nil {
		return false, fmt.Errorf("record billing event failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *BillingEventRepository) MarkProcessed(provider, providerEventID, processingError string) error {
	updates := map[string]interface{}{
		"processed":        true,
		"processing_error": processingError,
	}
	err := r.db.Model(&model.BillingEvent{}).
		Where("provider = ? AND provider_event_id = ?", provider, providerEventID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("mark billing event processed failed: %w", err)
	}
	return nil
}

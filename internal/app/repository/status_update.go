package repository

import (
	"arka/internal/app/ds"
	"time"
)

// Методы для истории смен статуса

func (r *Repository) CreateStatusUpdate(requestID uint, oldStatus, newStatus ds.RequestStatus, adminMessage *string) (*ds.StatusUpdate, error) {
	update := ds.StatusUpdate{
		RequestID:    requestID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		AdminMessage: adminMessage,
		CreatedAt:    time.Now(),
	}

	err := r.db.Create(&update).Error
	if err != nil {
		return nil, err
	}

	return &update, nil
}

// GetStatusUpdates — история по заявке, новые сверху
func (r *Repository) GetStatusUpdates(requestID uint) ([]ds.StatusUpdate, error) {
	var updates []ds.StatusUpdate
	err := r.db.Where("request_id = ?", requestID).Order("created_at DESC").Find(&updates).Error
	return updates, err
}

// SetStatusUpdateNotified — единственная разрешённая мутация записи истории
func (r *Repository) SetStatusUpdateNotified(updateID uint, notified bool) error {
	return r.db.Model(&ds.StatusUpdate{}).
		Where("id = ?", updateID).
		Update("notified", notified).Error
}

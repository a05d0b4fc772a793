package repository

import (
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListBySessionID(sessionID string, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	var messages []model.Message
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

// ListRecentBySessionID returns the newest non-notice messages in
// chronological order; this is the window replayed to the answer engine.
func (r *MessageRepository) ListRecentBySessionID(sessionID string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	var messages []model.Message
	if err := r.db.Where("session_id = ? AND notice = ?", sessionID, false).
		Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list recent messages failed: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

package repository

import (
	"context"

	"github.com/samber/lo"

	"chat_relay/internal/models"
	"chat_relay/internal/storage"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindVisible(ctx context.Context, reader, broadcast string, limit int) ([]models.Message, error)
	FindByUID(ctx context.Context, uid string) (*models.Message, error)
	Delete(ctx context.Context, uid string) (int64, error)
}

type messageRepository struct {
	baseRepository
}

func NewMessageRepository(db *storage.DB) MessageRepository {
	return &messageRepository{baseRepository{db: db}}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.create(ctx, message)
}

// FindVisible 查詢 reader 可見的訊息，依寫入順序回傳。
// limit > 0 時只保留最新的 limit 筆。
func (r *messageRepository) FindVisible(ctx context.Context, reader, broadcast string, limit int) ([]models.Message, error) {
	messages := []models.Message{}
	query := r.db.WithContext(ctx).
		Where("from_name = ? OR to_name = ? OR to_name = ? OR type = ?",
			reader, reader, broadcast, models.TypeMessage)

	if limit <= 0 {
		err := query.Order("seq asc").Find(&messages).Error
		return messages, err
	}

	if err := query.Order("seq desc").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}
	return lo.Reverse(messages), nil
}

func (r *messageRepository) FindByUID(ctx context.Context, uid string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) Delete(ctx context.Context, uid string) (int64, error) {
	return r.deleteWhere(ctx, &models.Message{}, "uid = ?", uid)
}

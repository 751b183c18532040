package repository

import (
	"context"

	"chat_relay/internal/models"
	"chat_relay/internal/storage"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]models.Participant, error)
	UpdateLastStatus(ctx context.Context, name string, lastStatus int64) (int64, error)
	FindStale(ctx context.Context, cutoff int64) ([]models.Participant, error)
	Delete(ctx context.Context, name string) (int64, error)
}

type participantRepository struct {
	baseRepository
}

func NewParticipantRepository(db *storage.DB) ParticipantRepository {
	return &participantRepository{baseRepository{db: db}}
}

func (r *participantRepository) Create(ctx context.Context, participant *models.Participant) error {
	return r.create(ctx, participant)
}

func (r *participantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, &models.Participant{}, "name = ?", name)
}

// FindAll 依名稱排序列出所有參與者
func (r *participantRepository) FindAll(ctx context.Context) ([]models.Participant, error) {
	participants := []models.Participant{}
	err := r.db.WithContext(ctx).Order("name asc").Find(&participants).Error
	return participants, err
}

// UpdateLastStatus 更新心跳時間，回傳受影響筆數
func (r *participantRepository) UpdateLastStatus(ctx context.Context, name string, lastStatus int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("name = ?", name).
		Update("last_status", lastStatus)
	return result.RowsAffected, result.Error
}

// FindStale 查詢最後心跳早於 cutoff 的參與者
func (r *participantRepository) FindStale(ctx context.Context, cutoff int64) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).Where("last_status < ?", cutoff).Find(&participants).Error
	return participants, err
}

func (r *participantRepository) Delete(ctx context.Context, name string) (int64, error) {
	return r.deleteWhere(ctx, &models.Participant{}, "name = ?", name)
}

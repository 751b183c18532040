package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"chat_relay/internal/models"
	"chat_relay/internal/repository"
	"chat_relay/internal/utils"
)

// Registry 管理參與者的身分與心跳
type Registry struct {
	repo  repository.ParticipantRepository
	clock utils.Clock
}

func NewRegistry(repo repository.ParticipantRepository, clock utils.Clock) *Registry {
	return &Registry{repo: repo, clock: clock}
}

// Join 新增參與者。名稱已存在時回傳 ErrDuplicateName 且不修改任何資料。
func (r *Registry) Join(ctx context.Context, name string) (*models.Participant, error) {
	exists, err := r.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, storeError("participant exists", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	participant := &models.Participant{
		Name:       name,
		LastStatus: r.clock.Now().UnixMilli(),
	}
	if err := r.repo.Create(ctx, participant); err != nil {
		// 與另一個同名 Join 競爭時由唯一鍵擋下
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, storeError("participant create", err)
	}
	return participant, nil
}

// Touch 更新心跳時間
func (r *Registry) Touch(ctx context.Context, name string) error {
	affected, err := r.repo.UpdateLastStatus(ctx, name, r.clock.Now().UnixMilli())
	if err != nil {
		return storeError("participant touch", err)
	}
	if affected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *Registry) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := r.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, storeError("participant exists", err)
	}
	return exists, nil
}

func (r *Registry) List(ctx context.Context) ([]models.Participant, error) {
	participants, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, storeError("participant list", err)
	}
	return participants, nil
}

// ScanStale 回傳所有 now - lastStatus > timeout 的參與者
func (r *Registry) ScanStale(ctx context.Context, now time.Time, timeout time.Duration) ([]models.Participant, error) {
	cutoff := now.UnixMilli() - timeout.Milliseconds()
	participants, err := r.repo.FindStale(ctx, cutoff)
	if err != nil {
		return nil, storeError("participant scan", err)
	}
	return participants, nil
}

// Evict 刪除參與者，名稱不存在時回傳 ErrParticipantNotFound
func (r *Registry) Evict(ctx context.Context, name string) error {
	affected, err := r.repo.Delete(ctx, name)
	if err != nil {
		return storeError("participant evict", err)
	}
	if affected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

package service

import (
	"context"
	"log/slog"

	"chat_relay/internal/models"
	"chat_relay/internal/utils"
)

// RoomService 負責需要同時操作 Registry 與 MessageLog 的流程
type RoomService struct {
	registry *Registry
	messages *MessageLog
	clock    utils.Clock
	log      *slog.Logger
}

func NewRoomService(registry *Registry, messages *MessageLog, clock utils.Clock, log *slog.Logger) *RoomService {
	return &RoomService{
		registry: registry,
		messages: messages,
		clock:    clock,
		log:      log,
	}
}

// Enter 加入聊天室並公告。兩個步驟沒有交易保護，
// 公告失敗時只記錄錯誤，參與者仍然保持加入狀態。
func (s *RoomService) Enter(ctx context.Context, name string) (*models.Participant, error) {
	participant, err := s.registry.Join(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.AppendStatus(ctx, name, models.TextEntered, s.clock.Now()); err != nil {
		s.log.Error("Failed to announce participant entry", "participant", name, "err", err)
	}
	return participant, nil
}

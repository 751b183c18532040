// Package service 實作聊天室的核心規則：參與者在線狀態、閒置清理與訊息可見性。
package service

import (
	"log/slog"
	"time"

	"chat_relay/internal/repository"
	"chat_relay/internal/utils"
)

// Options 是建立 Services 所需的設定
type Options struct {
	Broadcast      string
	ReaperInterval time.Duration
	ReaperTimeout  time.Duration
	Clock          utils.Clock
}

type Services struct {
	Registry *Registry
	Messages *MessageLog
	Room     *RoomService
	Feed     *FeedService
	Reaper   *Reaper
}

func NewServices(repos *repository.Repositories, opts Options, log *slog.Logger) *Services {
	clock := opts.Clock
	if clock == nil {
		clock = utils.SystemClock()
	}

	registry := NewRegistry(repos.Participant, clock)
	messages := NewMessageLog(repos.Message, registry, clock, opts.Broadcast)
	feed := NewFeedService(messages.Broadcast(), log)
	messages.SetPublisher(feed)

	return &Services{
		Registry: registry,
		Messages: messages,
		Room:     NewRoomService(registry, messages, clock, log),
		Feed:     feed,
		Reaper:   NewReaper(registry, messages, clock, opts.ReaperInterval, opts.ReaperTimeout, log),
	}
}

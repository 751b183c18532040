package repository

import (
	"chat_relay/internal/models"
	"chat_relay/internal/storage"
)

type Repositories struct {
	Participant ParticipantRepository
	Message     MessageRepository
}

func NewRepositories(db *storage.DB) *Repositories {
	return &Repositories{
		Participant: NewParticipantRepository(db),
		Message:     NewMessageRepository(db),
	}
}

// Migrate 建立 participants 與 messages 兩張表
func Migrate(db *storage.DB) error {
	return db.AutoMigrate(&models.Participant{}, &models.Message{})
}

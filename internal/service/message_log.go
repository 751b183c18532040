package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chat_relay/internal/models"
	"chat_relay/internal/repository"
	"chat_relay/internal/utils"
)

// SenderChecker 確認發送者目前是否在聊天室內
type SenderChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Publisher 接收每一則成功寫入的訊息
type Publisher interface {
	Publish(message models.Message)
}

// MessageInput 是使用者送出的訊息內容
type MessageInput struct {
	From string
	To   string
	Text string
	Type models.MessageType
}

// MessageLog 是只能附加的訊息紀錄，並依讀者過濾可見訊息
type MessageLog struct {
	repo      repository.MessageRepository
	senders   SenderChecker
	validate  *validator.Validate
	clock     utils.Clock
	broadcast string
	publisher Publisher
}

func NewMessageLog(repo repository.MessageRepository, senders SenderChecker, clock utils.Clock, broadcast string) *MessageLog {
	return &MessageLog{
		repo:      repo,
		senders:   senders,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		clock:     clock,
		broadcast: broadcast,
	}
}

// SetPublisher 設定訊息寫入後的推送對象
func (l *MessageLog) SetPublisher(publisher Publisher) {
	l.publisher = publisher
}

// Broadcast 回傳廣播對象的保留名稱
func (l *MessageLog) Broadcast() string {
	return l.broadcast
}

// Append 寫入使用者訊息。發送者必須是目前在線的參與者。
func (l *MessageLog) Append(ctx context.Context, input MessageInput) (*models.Message, error) {
	if input.Type != models.TypeMessage && input.Type != models.TypePrivateMessage {
		return nil, fmt.Errorf("%w: type must be message or private_message", ErrValidation)
	}

	message := l.newMessage(input.From, input.To, input.Text, input.Type, l.clock.Now())
	if err := l.validate.Struct(message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	exists, err := l.senders.Exists(ctx, message.From)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownSender
	}

	return l.store(ctx, message)
}

// AppendStatus 寫入進出聊天室的狀態訊息，對象固定為廣播
func (l *MessageLog) AppendStatus(ctx context.Context, name, text string, at time.Time) (*models.Message, error) {
	message := l.newMessage(name, l.broadcast, text, models.TypeStatus, at)
	if err := l.validate.Struct(message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return l.store(ctx, message)
}

// VisibleTo 回傳 reader 可見的訊息，依寫入順序排列。
// limit <= 0 時回傳全部，否則回傳最新的 limit 筆。
func (l *MessageLog) VisibleTo(ctx context.Context, reader string, limit int) ([]models.Message, error) {
	messages, err := l.repo.FindVisible(ctx, reader, l.broadcast, limit)
	if err != nil {
		return nil, storeError("message list", err)
	}
	return messages, nil
}

// DeleteOwn 刪除 requester 自己發出的訊息，沒有軟刪除
func (l *MessageLog) DeleteOwn(ctx context.Context, id, requester string) error {
	message, err := l.repo.FindByUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return storeError("message find", err)
	}
	if message.From != requester {
		return ErrForbidden
	}

	affected, err := l.repo.Delete(ctx, id)
	if err != nil {
		return storeError("message delete", err)
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (l *MessageLog) newMessage(from, to, text string, kind models.MessageType, at time.Time) *models.Message {
	return &models.Message{
		UID:  uuid.NewString(),
		From: from,
		To:   to,
		Text: text,
		Type: kind,
		Time: utils.FormatClock(at),
	}
}

func (l *MessageLog) store(ctx context.Context, message *models.Message) (*models.Message, error) {
	if err := l.repo.Create(ctx, message); err != nil {
		return nil, storeError("message append", err)
	}
	if l.publisher != nil {
		l.publisher.Publish(*message)
	}
	return message, nil
}

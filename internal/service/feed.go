package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"chat_relay/internal/models"
)

const (
	sendBufferSize = 256
	readLimit      = 4096
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	writeWait      = 10 * time.Second
)

// Client 代表一個訂閱即時訊息的 WebSocket 連線
type Client struct {
	Conn     *websocket.Conn
	Reader   string              // 連線所屬的參與者名稱
	SendChan chan models.Message // 待推送的訊息
}

// FeedService 將新寫入的訊息推送給可見的讀者
type FeedService struct {
	clients    map[string]map[*Client]bool // reader -> client -> bool
	clientsMux sync.RWMutex
	broadcast  string
	log        *slog.Logger
}

func NewFeedService(broadcast string, log *slog.Logger) *FeedService {
	return &FeedService{
		clients:   make(map[string]map[*Client]bool),
		broadcast: broadcast,
		log:       log,
	}
}

// HandleConnection 管理一條連線直到對方關閉或 ctx 結束
func (s *FeedService) HandleConnection(ctx context.Context, conn *websocket.Conn, reader string) {
	client := &Client{
		Conn:     conn,
		Reader:   reader,
		SendChan: make(chan models.Message, sendBufferSize),
	}

	s.addClient(client)

	defer func() {
		s.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	go s.writePump(client)
	s.readPump(client)
}

// Publish 把訊息放進所有可見讀者的發送佇列，佇列已滿的連線會被關閉
func (s *FeedService) Publish(message models.Message) {
	var slow []*Client

	s.clientsMux.RLock()
	for reader, clients := range s.clients {
		if !message.VisibleTo(reader, s.broadcast) {
			continue
		}
		for client := range clients {
			select {
			case client.SendChan <- message:
			default:
				slow = append(slow, client)
			}
		}
	}
	s.clientsMux.RUnlock()

	for _, client := range slow {
		s.log.Warn("Feed client too slow, dropping connection", "reader", client.Reader)
		s.removeClient(client)
		client.Conn.Close()
	}
}

// Readers 回傳目前有連線的讀者名稱
func (s *FeedService) Readers() []string {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	return lo.Keys(s.clients)
}

// Close 關閉所有連線，關機時使用
func (s *FeedService) Close() {
	s.clientsMux.RLock()
	defer s.clientsMux.RUnlock()

	for _, clients := range s.clients {
		for client := range clients {
			client.Conn.Close()
		}
	}
}

// readPump 只處理 pong 與關閉，讀者不會透過此連線送訊息
func (s *FeedService) readPump(client *Client) {
	client.Conn.SetReadLimit(readLimit)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Debug("Websocket unexpected close", "reader", client.Reader, "err", err)
			}
			return
		}
	}
}

func (s *FeedService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(message)
			if err != nil {
				s.log.Error("Message encoding error", "err", err)
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *FeedService) addClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if s.clients[client.Reader] == nil {
		s.clients[client.Reader] = make(map[*Client]bool)
	}
	s.clients[client.Reader][client] = true
}

func (s *FeedService) removeClient(client *Client) {
	s.clientsMux.Lock()
	defer s.clientsMux.Unlock()

	if clients, ok := s.clients[client.Reader]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(s.clients, client.Reader)
		}
	}
}

package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-ledger/internal/logger"
)

// Hub раздаёт события расчётов подключённым профилям.
// Все изменения набора клиентов выполняются в горутине Run.
type Hub struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
}

type message struct {
	profileID int64
	payload   []byte
}

// Envelope формат сообщения WebSocket API: "type" - имя события, "data" - полезная нагрузка.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 64),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for profileID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, profileID)
			}
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.profileID, msg.payload)
		}
	}
}

// Register добавляет клиента. После остановки хаба возвращает false.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastToProfile ставит событие в очередь на отправку всем подключениям профиля.
func (h *Hub) BroadcastToProfile(profileID int64, event string, data any) error {
	raw, err := json.Marshal(Envelope{Type: event, Data: data})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- message{profileID: profileID, payload: raw}:
		return nil
	case <-h.done:
		return fmt.Errorf("ws: хаб остановлен")
	default:
		return fmt.Errorf("ws: очередь событий переполнена")
	}
}

func (h *Hub) addClient(client *Client) {
	if _, ok := h.clients[client.profileID]; !ok {
		h.clients[client.profileID] = make(map[*Client]struct{})
	}
	h.clients[client.profileID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	clients, ok := h.clients[client.profileID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.profileID)
	}
}

func (h *Hub) send(profileID int64, payload []byte) {
	for client := range h.clients[profileID] {
		select {
		case client.send <- payload:
		default:
			// медленный клиент отключается, остальные продолжают получать события
			logger.Log.WithFields(logrus.Fields{
				"profile_id": profileID,
			}).Warn("ws: буфер клиента переполнен, соединение закрыто")
			h.removeClient(client)
		}
	}
}

package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event представляет структуру WebSocket-сообщения
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	// Максимальное время ожидания записи клиенту
	writeWait = 10 * time.Second

	// Период отправки ping-сообщений (должен быть меньше pongWait)
	pingPeriod = 54 * time.Second

	// Максимальное время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Размер буфера исходящих сообщений клиента
	sendBufferSize = 64
)

// Client представляет одно WebSocket-соединение
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// UserID заполняется для аутентифицированных клиентов, иначе 0
	UserID uint
}

// Hub управляет набором активных клиентов и рассылает им события.
// Клиенты только слушают: входящие сообщения (кроме ping/pong) игнорируются.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run запускает основной цикл хаба. Вызывается в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WSHub] Клиент подключен (userID=%d). Всего клиентов: %d", client.UserID, count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WSHub] Клиент отключен (userID=%d). Всего клиентов: %d", client.UserID, count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать - отбрасываем сообщение,
					// соединение закроет writePump по таймауту
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			log.Println("[WSHub] Хаб остановлен, все соединения закрыты")
			return
		}
	}
}

// Shutdown останавливает цикл хаба и закрывает все клиентские соединения
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount возвращает число подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastEvent сериализует событие и рассылает его всем клиентам
func (h *Hub) BroadcastEvent(eventType string, data interface{}) {
	event := Event{Type: eventType, Data: data}
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WSHub] Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// NewClient регистрирует соединение в хабе и запускает его read/write циклы
func (h *Hub) NewClient(conn *websocket.Conn, userID uint) *Client {
	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		UserID: userID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

// readPump читает сообщения от клиента для поддержания соединения.
// Содержимое сообщений игнорируется - хаб работает только на отправку.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WSHub] Неожиданное закрытие соединения (userID=%d): %v", c.UserID, err)
			}
			return
		}
	}
}

// writePump отправляет сообщения клиенту и поддерживает соединение ping-ами
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

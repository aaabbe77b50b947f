package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/learnflow-api/internal/ws"
	"github.com/yourusername/learnflow-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения для live-обновлений
// (лидерборд, голоса, новые викторины, выпуск значков)
type WSHandler struct {
	hub        *ws.Hub
	jwtService *auth.JWTService
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *ws.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Пустой Origin - не браузерный клиент (curl, мобильное приложение)
		if origin == "" {
			return true
		}

		// Список разрешенных origin (синхронизирован с CORS в main.go)
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"https://learnflow.vercel.app",
		}

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: rejected unauthorized origin: %s", origin)
		return false
	},
	EnableCompression: true,
}

// HandleConnection обрабатывает входящее WebSocket соединение.
// Соединение анонимное по умолчанию; токен в ?token=... привязывает его
// к пользователю.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	var userID uint
	if token := c.Query("token"); token != "" {
		claims, err := h.jwtService.ParseToken(token)
		if err != nil {
			log.Printf("WebSocket: invalid or expired token - %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket: error upgrading connection: %v", err)
		return
	}

	log.Printf("WebSocket: connection upgraded for UserID=%d", userID)
	h.hub.NewClient(conn, userID)
}

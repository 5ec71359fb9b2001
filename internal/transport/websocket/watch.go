package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
	"chalkup/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// WatchEvent — одно сообщение подписки: текущее состояние сетки
// месяца. Первое сообщение приходит сразу после подключения. Событие
// с Type "error" означает обрыв подписки; после него соединение
// закрывается.
type WatchEvent struct {
	Type      string                    `json:"type"`
	TutorID   string                    `json:"tutor_id"`
	MonthYear string                    `json:"month_year"`
	Month     *domain.MonthAvailability `json:"month,omitempty"`
	Error     string                    `json:"error,omitempty"`
	Timestamp string                    `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// WatchHub раздает живые обновления сеток доступности по WebSocket.
// Каждое подключение держит собственную подписку на пару
// (тьютор, месяц); hub только учитывает активные соединения.
type WatchHub struct {
	services *service.Services
	logger   *zap.Logger

	mutex   sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewWatchHub(services *service.Services, logger *zap.Logger) *WatchHub {
	return &WatchHub{
		services: services,
		logger:   logger,
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket обрабатывает подключение наблюдателя. Авторизация
// идет через query-параметр token, целевая сетка задается параметрами
// tutor_id и month.
func (h *WatchHub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "требуется токен"})
		return
	}
	if _, _, err := h.services.Auth.ParseToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "недействительный токен"})
		return
	}

	tutorID := c.Query("tutor_id")
	monthYear := c.Query("month")
	if tutorID == "" || monthYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "требуются tutor_id и month"})
		return
	}

	sub, err := h.services.Availability.Observe(c.Request.Context(), tutorID, monthYear)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		h.logger.Error("ошибка апгрейда соединения", zap.Error(err))
		return
	}

	h.mutex.Lock()
	h.clients[conn] = struct{}{}
	h.mutex.Unlock()

	h.logger.Info("наблюдатель подключен",
		zap.String("tutorId", tutorID),
		zap.String("monthYear", monthYear),
	)

	go h.writePump(conn, sub, tutorID, monthYear)
	go h.readPump(conn, sub)
}

// writePump шлет наблюдателю обновления подписки и пинги.
func (h *WatchHub) writePump(conn *websocket.Conn, sub *repository.Subscription, tutorID, monthYear string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.drop(conn, sub)
	}()

	for {
		select {
		case month, open := <-sub.Updates:
			if !open {
				return
			}
			event := WatchEvent{
				Type:      "availability",
				TutorID:   tutorID,
				MonthYear: monthYear,
				Month:     month,
				Timestamp: time.Now().Format(time.RFC3339),
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case err, open := <-sub.Errors:
			if !open {
				return
			}
			h.logger.Error("подписка на сетку прервана",
				zap.String("tutorId", tutorID),
				zap.Error(err),
			)
			event := WatchEvent{
				Type:      "error",
				TutorID:   tutorID,
				MonthYear: monthYear,
				Error:     err.Error(),
				Timestamp: time.Now().Format(time.RFC3339),
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteJSON(event)
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump вычитывает входящие сообщения только ради обнаружения
// закрытия соединения.
func (h *WatchHub) readPump(conn *websocket.Conn, sub *repository.Subscription) {
	defer h.drop(conn, sub)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WatchHub) drop(conn *websocket.Conn, sub *repository.Subscription) {
	h.mutex.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		sub.Close()
		conn.Close()
		h.logger.Info("наблюдатель отключен")
	}
	h.mutex.Unlock()
}

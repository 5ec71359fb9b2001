package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chalkup/internal/domain"
	"chalkup/internal/repository"
)

func dialWritePump(t *testing.T, hub *WatchHub, sub *repository.Subscription) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.mutex.Lock()
		hub.clients[conn] = struct{}{}
		hub.mutex.Unlock()
		hub.writePump(conn, sub, "tutor-1", "2025-04")
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	return client
}

func TestWritePumpForwardsSubscriptionError(t *testing.T) {
	hub := NewWatchHub(nil, zap.NewNop())
	updates := make(chan *domain.MonthAvailability, 1)
	errs := make(chan error, 1)
	sub := &repository.Subscription{Updates: updates, Errors: errs}

	client := dialWritePump(t, hub, sub)

	updates <- &domain.MonthAvailability{TutorID: "tutor-1", YearMonth: "2025-04"}

	var snapshot WatchEvent
	require.NoError(t, client.ReadJSON(&snapshot))
	assert.Equal(t, "availability", snapshot.Type)

	errs <- errors.New("поток обновлений сетки прерван")

	// Обрыв подписки доходит до наблюдателя отдельным событием.
	var failure WatchEvent
	require.NoError(t, client.ReadJSON(&failure))
	assert.Equal(t, "error", failure.Type)
	assert.Equal(t, "поток обновлений сетки прерван", failure.Error)

	// После события об ошибке сервер закрывает соединение.
	_, _, err := client.ReadMessage()
	assert.Error(t, err)
}

func TestWritePumpStopsWhenSubscriptionCloses(t *testing.T) {
	hub := NewWatchHub(nil, zap.NewNop())
	updates := make(chan *domain.MonthAvailability, 1)
	errs := make(chan error, 1)
	sub := &repository.Subscription{Updates: updates, Errors: errs}

	client := dialWritePump(t, hub, sub)

	close(updates)
	close(errs)

	// Штатное закрытие подписки не порождает события об ошибке.
	_, _, err := client.ReadMessage()
	assert.Error(t, err)
}

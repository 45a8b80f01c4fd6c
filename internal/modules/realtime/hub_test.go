package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtsvc "gutvbooker/internal/pkg/jwt"
)

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	cl := hub.register(1)

	for i := 0; i < sendBuffer+5; i++ {
		hub.Publish("booking.created", map[string]int{"n": i})
	}
	assert.Len(t, cl.send, sendBuffer)

	hub.unregister(cl)
	hub.unregister(cl)
	assert.Zero(t, hub.OnlineCount())
}

func TestHandler_StreamsEventsToAdmins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := jwtsvc.New("test-secret", time.Hour)
	hub := NewHub()
	t.Cleanup(hub.Close)

	r := gin.New()
	r.GET("/api/booking/ws", NewHandler(hub, jwt).Subscribe)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/booking/ws"

	userToken, err := jwt.GenerateToken(2, "user")
	require.NoError(t, err)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token="+userToken, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken, err := jwt.GenerateToken(1, "admin")
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+adminToken, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("booking.approved", map[string]int64{"bookingId": 42})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type string           `json:"type"`
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, "booking.approved", ev.Type)
	assert.Equal(t, int64(42), ev.Data["bookingId"])
}

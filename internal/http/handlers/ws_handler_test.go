package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-ledger/internal/service"
	"github.com/ignatzorin/freelance-ledger/internal/ws"
)

func TestWSHandler_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewWSHandler(ws.NewHub(), service.NewTokenManager("ws-secret-ws-secret-ws-secret-ws", time.Hour), nil)
	r.GET("/ws", handler.Handle)

	for _, path := range []string{"/ws", "/ws?token=garbage"} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestWSHandler_DeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	tokens := service.NewTokenManager("ws-secret-ws-secret-ws-secret-ws", time.Hour)
	r := gin.New()
	r.GET("/ws", NewWSHandler(hub, tokens, nil).Handle)
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, _, err := tokens.IssueAccess(5)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// клиент регистрируется в хабе асинхронно, поэтому событие шлётся до первого получения
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = hub.BroadcastToProfile(5, service.EventBalanceDeposited, map[string]int64{"to_profile_id": 5})
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var env ws.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, service.EventBalanceDeposited, env.Type)
}

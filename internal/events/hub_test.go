package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/config"
	"github.com/babyduj/shower-api/internal/domain"
)

func testConfig() *config.EventsConfig {
	return &config.EventsConfig{
		BroadcastBuffer: 8,
		ClientBuffer:    8,
		PingInterval:    time.Second,
	}
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(testConfig(), nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(w, r); err != nil {
			t.Logf("ServeWS: %v", err)
		}
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub, url := startHub(t)
	first := dial(t, url)
	second := dial(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hub.Publish(domain.Event{Type: domain.EventGiftReserved, ID: 4, ActorID: 2, At: at})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var got domain.Event
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, domain.EventGiftReserved, got.Type)
		assert.Equal(t, uint(4), got.ID)
		assert.Equal(t, uint(2), got.ActorID)
		assert.True(t, at.Equal(got.At))
	}
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(&config.EventsConfig{BroadcastBuffer: 1, ClientBuffer: 1, PingInterval: time.Second}, nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish(domain.Event{Type: domain.EventVoteCast, ID: uint(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub(testConfig(), func(r *http.Request) bool {
		return r.Header.Get("Origin") == "https://shower.example"
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r)
	}))
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestNewHub_DefaultsPingInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		hub := NewHub(&config.EventsConfig{PingInterval: d}, nil)
		assert.Equal(t, defaultPingInterval, hub.pingInterval)
	}

	assert.Equal(t, time.Second, NewHub(testConfig(), nil).pingInterval)
}

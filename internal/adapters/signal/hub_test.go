package signal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/gorilla/websocket"
)

// serverSideConn returns the server end of a live websocket pair.
func serverSideConn(t *testing.T) *websocket.Conn {
	t.Helper()
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return <-accepted
}

func TestHubSendToUnknownConnection(t *testing.T) {
	h := NewHub(nil)
	err := h.Send("ghost", core.Notification{Kind: core.KindPartnerJoin})
	if !errors.Is(err, ErrConnClosed) {
		t.Fatalf("error = %v, want ErrConnClosed", err)
	}
}

func TestHubSendQueuesEncodedFrame(t *testing.T) {
	h := NewHub(app.DropPolicy{})
	c := newWSConn(serverSideConn(t), 4)
	h.attach("a", c)

	if err := h.Send("a", core.Notification{Kind: core.KindRoomJoin, Success: true}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	got := <-c.send
	if string(got) != `{"type":"room_join","success":true}` {
		t.Fatalf("queued frame = %s", got)
	}
}

func TestHubBackpressurePolicies(t *testing.T) {
	t.Run("drop keeps the connection", func(t *testing.T) {
		h := NewHub(app.DropPolicy{})
		c := newWSConn(serverSideConn(t), 1)
		h.attach("a", c)

		_ = h.Send("a", core.Notification{Kind: core.KindPartnerJoin})
		err := h.Send("a", core.Notification{Kind: core.KindPartnerLeave})
		if !errors.Is(err, ErrBackpressure) {
			t.Fatalf("error = %v, want ErrBackpressure", err)
		}
		if err := c.TrySend(core.Frame("x")); !errors.Is(err, ErrBackpressure) {
			t.Fatalf("connection state after drop = %v", err)
		}
	})

	t.Run("disconnect closes the connection", func(t *testing.T) {
		h := NewHub(app.DisconnectPolicy{})
		c := newWSConn(serverSideConn(t), 1)
		h.attach("a", c)

		_ = h.Send("a", core.Notification{Kind: core.KindPartnerJoin})
		err := h.Send("a", core.Notification{Kind: core.KindPartnerLeave})
		if !errors.Is(err, ErrBackpressure) {
			t.Fatalf("error = %v, want ErrBackpressure", err)
		}
		if err := c.TrySend(core.Frame("x")); !errors.Is(err, ErrConnClosed) {
			t.Fatalf("connection state after disconnect = %v", err)
		}
	})
}

func TestHubCloseAll(t *testing.T) {
	h := NewHub(nil)
	h.attach("a", newWSConn(serverSideConn(t), 1))
	h.attach("b", newWSConn(serverSideConn(t), 1))

	if n := h.CloseAll(); n != 2 {
		t.Fatalf("CloseAll() = %d, want 2", n)
	}
	h.detach("a")
	if h.Len() != 1 {
		t.Fatalf("Len() = %d after detach", h.Len())
	}
}

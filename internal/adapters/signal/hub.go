package signal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Hub is the table of live websocket connections. It implements
// core.Transport for the orchestrator.
type Hub struct {
	mu     sync.RWMutex
	conns  map[domain.ConnID]*wsConn
	policy app.Policy
}

func NewHub(policy app.Policy) *Hub {
	if policy == nil {
		policy = app.DropPolicy{}
	}
	return &Hub{
		conns:  make(map[domain.ConnID]*wsConn),
		policy: policy,
	}
}

func (h *Hub) attach(id domain.ConnID, c *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = c
}

func (h *Hub) detach(id domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Send encodes n and queues it on the connection without blocking.
func (h *Hub) Send(to domain.ConnID, n core.Notification) error {
	h.mu.RLock()
	c, ok := h.conns[to]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("send %s to %s: %w", n.Kind, to, ErrConnClosed)
	}

	frame, err := encodeNotification(n)
	if err != nil {
		return fmt.Errorf("encode %s: %w", n.Kind, err)
	}
	err = c.TrySend(frame)
	if errors.Is(err, ErrBackpressure) && h.policy.OnBackPressure() == app.Disconnect {
		log.Warn().Str("module", "adapters.signal").Str("conn", string(to)).Msg("slow consumer disconnected")
		c.Close()
	}
	if err != nil {
		return fmt.Errorf("send %s to %s: %w", n.Kind, to, err)
	}
	return nil
}

// CloseAll closes every connection; read pumps then unwind on their own.
func (h *Hub) CloseAll() int {
	h.mu.RLock()
	conns := make([]*wsConn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Close()
	}
	return len(conns)
}

package signal

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "adapters.signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "adapters.signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("module", "adapters.signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "adapters.signal").Msg("writePump ping error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid domain.ConnID, c *wsConn) {
	defer func() {
		ctl.Orch.OnDisconnect(sid)
		ctl.Hub.detach(sid)
		ctl.limiter.Forget(sid)
		c.Close()
		log.Info().Str("module", "adapters.signal").Str("conn", string(sid)).Msg("readPump closing")
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "adapters.signal").Str("conn", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				logReadError(sid, err)
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func logReadError(sid domain.ConnID, err error) {
	ev := log.Debug()
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		ev = log.Warn()
	case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure):
		ev = log.Warn()
	}
	ev.Err(err).Str("module", "adapters.signal").Str("conn", string(sid)).Msg("readPump read error")
}

func (ctl *SignalWSController) handleSignal(sid domain.ConnID, c *wsConn, data []byte) {
	env, err := decodeEnvelope(data)
	if err != nil {
		log.Debug().Err(err).Str("module", "adapters.signal").Str("conn", string(sid)).Msg("bad json")
		ctl.sendError(c, "bad_payload")
		return
	}

	handler, ok := ctl.handlers[env.Type]
	if !ok {
		log.Debug().Str("module", "adapters.signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(c, "unknown_type")
		return
	}
	handler(ctl, sid, c, env)
}

func (ctl *SignalWSController) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c *wsConn, reason string) {
	ctl.sendJSON(c, errorFrame{Type: typeError, Error: reason})
}

package signal

import (
	"context"
	"sync"
	"time"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Options tunes the websocket endpoint.
type Options struct {
	ReadLimit         int64
	PingPeriod        time.Duration
	PongWait          time.Duration
	WriteWait         time.Duration
	SendBuffer        int
	AllowedOrigins    []string
	EnterRateLimit    int
	EnterRateInterval time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ReadLimit:         cfg.ReadLimit,
		PingPeriod:        cfg.PingPeriod,
		PongWait:          cfg.PongWait,
		WriteWait:         cfg.WriteWait,
		SendBuffer:        cfg.SendBuffer,
		AllowedOrigins:    cfg.AllowedOrigins,
		EnterRateLimit:    cfg.EnterRateLimit,
		EnterRateInterval: cfg.EnterRateInterval,
	}
}

type handlerFunc func(ctl *SignalWSController, sid domain.ConnID, conn *wsConn, env envelope)

// SignalWSController turns websocket traffic into orchestrator events.
type SignalWSController struct {
	Orch *orch.Orchestrator
	Hub  *Hub

	opts     Options
	limiter  *RoomRateLimiter
	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
	pumps    sync.WaitGroup
}

func NewSignalWSController(o *orch.Orchestrator, hub *Hub, opts Options) *SignalWSController {
	origins := newOriginPolicy(opts.AllowedOrigins)
	ctl := &SignalWSController{
		Orch:    o,
		Hub:     hub,
		opts:    opts,
		limiter: NewRoomRateLimiter(opts.EnterRateLimit, opts.EnterRateInterval),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.check,
		},
	}
	ctl.handlers = map[string]handlerFunc{
		typeRoomEnter: (*SignalWSController).handleRoomEnter,
		typeRoomLeave: (*SignalWSController).handleRoomLeave,
		typeMessage:   (*SignalWSController).handleMessage,
		typePing:      (*SignalWSController).handlePing,
		typeWhoAmI:    (*SignalWSController).handleWhoAmI,
	}
	return ctl
}

// HandleSignal upgrades the request and starts the connection pumps. Every
// upgrade gets a fresh connection id.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Str("client_token", token).Msg("ws upgrade")
		return
	}

	sid := domain.NewConnID()
	log.Info().Str("module", "adapters.signal").Str("conn", string(sid)).Str("client_token", token).Msg("new WS connection")

	conn := newWSConn(ws, ctl.opts.SendBuffer)
	ctl.Hub.attach(sid, conn)
	ctl.Orch.OnConnect(sid)

	connCtx, cancel := context.WithCancel(ctx)
	ctl.pumps.Go(func() {
		ctl.writePump(connCtx, conn)
	})
	ctl.pumps.Go(func() {
		defer cancel()
		ctl.readPump(connCtx, sid, conn)
	})
}

// Shutdown closes every connection and waits for the pumps to unwind.
func (ctl *SignalWSController) Shutdown(ctx context.Context) error {
	n := ctl.Hub.CloseAll()
	log.Info().Str("module", "adapters.signal").Int("connections", n).Msg("closing websocket connections")

	done := make(chan struct{})
	go func() {
		ctl.pumps.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

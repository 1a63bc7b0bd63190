package signal

import (
	"errors"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRoomEnter(sid domain.ConnID, conn *wsConn, env envelope) {
	if !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "adapters.signal").Str("conn", string(sid)).Msg("room enter throttled")
		ctl.sendError(conn, "rate_limited")
		return
	}

	err := ctl.Orch.Join(sid, env.RoomID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidRoomID), errors.Is(err, domain.ErrRoomFull):
		log.Info().Err(err).Str("module", "adapters.signal").Str("conn", string(sid)).Str("room", env.RoomID).Msg("join refused")
	default:
		log.Warn().Err(err).Str("module", "adapters.signal").Str("conn", string(sid)).Str("room", env.RoomID).Msg("join failed")
	}
}

// handleRoomLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleRoomLeave(sid domain.ConnID, _ *wsConn, _ envelope) {
	if ctl.Orch.Leave(sid) {
		log.Info().Str("module", "adapters.signal").Str("conn", string(sid)).Msg("leave")
	}
}

func (ctl *SignalWSController) handleMessage(sid domain.ConnID, _ *wsConn, env envelope) {
	ctl.Orch.OnFrame(sid, core.Frame(env.Payload))
}

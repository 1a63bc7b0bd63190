package orch

import (
	"fmt"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join moves c into the room named raw. A client already in a room leaves
// it first. The requester always gets a RoomJoin with the outcome; the
// returned error tells rejections apart (ErrInvalidRoomID, ErrRoomFull,
// ErrAlreadyInRoom, ErrUnknownConnection).
func (o *Orchestrator) Join(c domain.ConnID, raw string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	room, err := o.admitLocked(c, raw)

	o.sendLocked(c, core.Notification{Kind: core.KindRoomJoin, Success: err == nil})
	if err == nil || o.republishFailed {
		o.publishLocked()
	}
	if err != nil {
		log.Debug().Err(err).Str("module", "app.orch").Str("conn", string(c)).Str("room", raw).Msg("join rejected")
		return fmt.Errorf("join %q: %w", raw, err)
	}

	o.broadcastLocked(room, c, core.Notification{Kind: core.KindPartnerJoin})
	log.Info().Str("module", "app.orch").Str("conn", string(c)).Str("room", raw).Int("occupants", room.Count()).Msg("added to room")
	return nil
}

func (o *Orchestrator) admitLocked(c domain.ConnID, raw string) (*core.Room, error) {
	if !o.clients.Known(c) {
		return nil, domain.ErrUnknownConnection
	}
	if from, ok := o.clients.RoomOf(c); ok {
		o.leaveLocked(c)
		log.Info().Str("module", "app.orch").Str("conn", string(c)).Str("from_room", string(from)).Msg("left room before join")
	}

	id, err := domain.ParseRoomID(raw)
	if err != nil {
		return nil, err
	}
	room := o.rooms.GetOrCreate(id)
	if err := room.Add(c); err != nil {
		return nil, err
	}
	o.clients.Assign(c, id)
	return room, nil
}

// Leave takes c out of its room, if any, without dropping the connection.
func (o *Orchestrator) Leave(c domain.ConnID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.leaveLocked(c)
}

// leaveLocked notifies the remaining occupants before c is removed, so the
// PartnerLeave goes out while the peer set is still intact.
func (o *Orchestrator) leaveLocked(c domain.ConnID) bool {
	room := o.roomOfLocked(c)
	if room == nil {
		return false
	}
	o.broadcastLocked(room, c, core.Notification{Kind: core.KindPartnerLeave})
	room.Remove(c)
	if room.IsEmpty() {
		o.rooms.Remove(room.ID())
	}
	o.clients.Clear(c)
	o.publishLocked()
	log.Info().Str("module", "app.orch").Str("conn", string(c)).Str("room", string(room.ID())).Int("occupants", room.Count()).Msg("removed from room")
	return true
}

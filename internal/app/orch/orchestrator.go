// Package orch holds the session coordinator: the single owner of room
// membership state. Every transition runs under one mutex so the room
// registry and the client directory are never observed out of step.
package orch

import (
	"fmt"
	"sync"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	mu        sync.Mutex
	rooms     *app.RoomRegistry
	clients   *app.ClientDirectory
	transport core.Transport
	status    core.StatusPublisher

	// republishFailed keeps the status page rewrite on rejected joins.
	republishFailed bool
}

type Option func(*Orchestrator)

func WithStatus(p core.StatusPublisher) Option {
	return func(o *Orchestrator) { o.status = p }
}

// WithFailedJoinRepublish controls whether a rejected RoomEnter still
// republishes the (unchanged) occupancy. Enabled by default.
func WithFailedJoinRepublish(enabled bool) Option {
	return func(o *Orchestrator) { o.republishFailed = enabled }
}

func New(t core.Transport, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		rooms:           app.NewRoomRegistry(),
		clients:         app.NewClientDirectory(),
		transport:       t,
		republishFailed: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) OnConnect(c domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.clients.Register(c) {
		log.Warn().Str("module", "app.orch").Str("conn", string(c)).Msg("connect for known connection ignored")
		return
	}
	log.Info().Str("module", "app.orch").Str("conn", string(c)).Int("connections", o.clients.Len()).Msg("connected")
}

func (o *Orchestrator) OnDisconnect(c domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.clients.Known(c) {
		return
	}
	o.leaveLocked(c)
	o.clients.Unregister(c)
	log.Info().Str("module", "app.orch").Str("conn", string(c)).Int("connections", o.clients.Len()).Msg("disconnected")
}

// OnFrame relays payload untouched to the other occupants of the sender's
// room and reports how many peers accepted it. Frames from connections
// without a room are dropped.
func (o *Orchestrator) OnFrame(c domain.ConnID, payload core.Frame) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	room := o.roomOfLocked(c)
	if room == nil {
		log.Debug().Str("module", "app.orch").Str("conn", string(c)).Msg("frame without room dropped")
		return 0
	}
	sent := o.broadcastLocked(room, c, core.Notification{Kind: core.KindRelay, Payload: payload})
	log.Debug().
		Str("module", "app.orch").
		Str("conn", string(c)).
		Str("room", string(room.ID())).
		Int("bytes", len(payload)).
		Int("sent_to", sent).
		Msg("frame relayed")
	return sent
}

// roomOfLocked resolves the room a connection occupies, or nil.
func (o *Orchestrator) roomOfLocked(c domain.ConnID) *core.Room {
	id, ok := o.clients.RoomOf(c)
	if !ok {
		return nil
	}
	room, ok := o.rooms.Get(id)
	if !ok || !room.Has(c) {
		log.Panic().
			Str("module", "app.orch").
			Str("conn", string(c)).
			Str("room", string(id)).
			Bool("room_exists", ok).
			Msg("directory and room registry disagree")
	}
	return room
}

// broadcastLocked sends n to every occupant of room except from.
func (o *Orchestrator) broadcastLocked(room *core.Room, from domain.ConnID, n core.Notification) int {
	sent := 0
	for _, peer := range room.Others(from) {
		if o.sendLocked(peer, n) {
			sent++
		}
	}
	return sent
}

func (o *Orchestrator) sendLocked(to domain.ConnID, n core.Notification) bool {
	if o.transport == nil {
		return false
	}
	if err := o.transport.Send(to, n); err != nil {
		log.Warn().Err(err).Str("module", "app.orch").Str("conn", string(to)).Stringer("kind", n.Kind).Msg("send failed")
		return false
	}
	return true
}

func (o *Orchestrator) publishLocked() {
	if o.status == nil {
		return
	}
	o.status.Publish(o.rooms.List())
}

// Rooms returns the current occupancy ordered by room id.
func (o *Orchestrator) Rooms() []core.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rooms.List()
}

func (o *Orchestrator) Room(id domain.RoomID) (core.RoomInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	room, ok := o.rooms.Get(id)
	if !ok {
		return core.RoomInfo{}, false
	}
	return room.Info(), true
}

func (o *Orchestrator) Occupants(id domain.RoomID) []domain.ConnID {
	o.mu.Lock()
	defer o.mu.Unlock()
	room, ok := o.rooms.Get(id)
	if !ok {
		return nil
	}
	return room.Occupants()
}

func (o *Orchestrator) RoomOf(c domain.ConnID) (domain.RoomID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clients.RoomOf(c)
}

func (o *Orchestrator) Connections() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clients.Len()
}

// Verify checks that the directory and the registry describe the same
// membership and that no room is empty or over capacity.
func (o *Orchestrator) Verify() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	seen := 0
	var err error
	o.clients.Each(func(c domain.ConnID, id domain.RoomID) {
		if err != nil || id == "" {
			return
		}
		seen++
		room, ok := o.rooms.Get(id)
		if !ok {
			err = fmt.Errorf("conn %s points at missing room %s", c, id)
			return
		}
		if !room.Has(c) {
			err = fmt.Errorf("conn %s points at room %s which does not hold it", c, id)
		}
	})
	if err != nil {
		return err
	}

	total := 0
	for _, info := range o.rooms.List() {
		if info.Occupants == 0 {
			return fmt.Errorf("room %s is empty", info.ID)
		}
		if info.Occupants > domain.MaxClients {
			return fmt.Errorf("room %s holds %d occupants", info.ID, info.Occupants)
		}
		total += info.Occupants
	}
	if total != seen {
		return fmt.Errorf("rooms hold %d occupants but directory assigns %d", total, seen)
	}
	return nil
}

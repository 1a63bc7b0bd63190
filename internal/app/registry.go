package app

import (
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// ClientDirectory maps each live connection to the room it occupies.
// An empty RoomID means connected but unassigned. Like RoomRegistry it is
// guarded by the coordinator lock.
type ClientDirectory struct {
	clients map[domain.ConnID]domain.RoomID
}

func NewClientDirectory() *ClientDirectory {
	return &ClientDirectory{clients: make(map[domain.ConnID]domain.RoomID)}
}

// Register inserts c with no room. It reports false if c was already known.
func (d *ClientDirectory) Register(c domain.ConnID) bool {
	if _, ok := d.clients[c]; ok {
		return false
	}
	d.clients[c] = ""
	log.Debug().Str("module", "app.directory").Str("conn", string(c)).Msg("registered")
	return true
}

func (d *ClientDirectory) Known(c domain.ConnID) bool {
	_, ok := d.clients[c]
	return ok
}

func (d *ClientDirectory) RoomOf(c domain.ConnID) (domain.RoomID, bool) {
	room, ok := d.clients[c]
	if !ok || room == "" {
		return "", false
	}
	return room, true
}

func (d *ClientDirectory) Assign(c domain.ConnID, room domain.RoomID) {
	d.clients[c] = room
}

func (d *ClientDirectory) Clear(c domain.ConnID) {
	if _, ok := d.clients[c]; ok {
		d.clients[c] = ""
	}
}

func (d *ClientDirectory) Unregister(c domain.ConnID) {
	delete(d.clients, c)
	log.Debug().Str("module", "app.directory").Str("conn", string(c)).Msg("unregistered")
}

func (d *ClientDirectory) Len() int { return len(d.clients) }

// Each calls fn for every known connection and its room ("" when unassigned).
func (d *ClientDirectory) Each(fn func(c domain.ConnID, room domain.RoomID)) {
	for c, r := range d.clients {
		fn(c, r)
	}
}

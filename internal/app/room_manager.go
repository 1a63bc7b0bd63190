package app

import (
	"sort"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomRegistry owns every active room. It never touches the client
// directory, and it is guarded by the coordinator lock rather than its own.
type RoomRegistry struct {
	rooms map[domain.RoomID]*core.Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[domain.RoomID]*core.Room)}
}

func (f *RoomRegistry) GetOrCreate(id domain.RoomID) *core.Room {
	if room, ok := f.rooms[id]; ok {
		return room
	}
	room := core.NewRoom(id)
	f.rooms[id] = room
	log.Debug().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return room
}

func (f *RoomRegistry) Get(id domain.RoomID) (*core.Room, bool) {
	room, ok := f.rooms[id]
	return room, ok
}

// Remove deletes the room entry. Callers make sure it is empty.
func (f *RoomRegistry) Remove(id domain.RoomID) {
	if _, ok := f.rooms[id]; !ok {
		return
	}
	delete(f.rooms, id)
	log.Debug().Str("module", "app.rooms").Str("room", string(id)).Msg("room removed")
}

func (f *RoomRegistry) Len() int { return len(f.rooms) }

// List returns the occupancy of every room ordered by room id.
func (f *RoomRegistry) List() []core.RoomInfo {
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

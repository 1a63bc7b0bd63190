package core

import (
	"sort"

	"github.com/dkeye/Relay/internal/domain"
)

// Room is an in-memory occupant set bounded by domain.MaxClients.
// It is not safe for concurrent use; the coordinator serializes access.
type Room struct {
	id        domain.RoomID
	occupants map[domain.ConnID]struct{}
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:        id,
		occupants: make(map[domain.ConnID]struct{}, domain.MaxClients),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

func (r *Room) Count() int { return len(r.occupants) }

func (r *Room) IsFull() bool { return len(r.occupants) >= domain.MaxClients }

func (r *Room) IsEmpty() bool { return len(r.occupants) == 0 }

func (r *Room) Has(c domain.ConnID) bool {
	_, ok := r.occupants[c]
	return ok
}

// Add admits c. It fails when the room is full or c is already inside.
func (r *Room) Add(c domain.ConnID) error {
	if r.Has(c) {
		return domain.ErrAlreadyInRoom
	}
	if r.IsFull() {
		return domain.ErrRoomFull
	}
	r.occupants[c] = struct{}{}
	return nil
}

func (r *Room) Remove(c domain.ConnID) bool {
	if !r.Has(c) {
		return false
	}
	delete(r.occupants, c)
	return true
}

// Others returns every occupant except from, in a stable order.
func (r *Room) Others(from domain.ConnID) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(r.occupants))
	for c := range r.occupants {
		if c == from {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Occupants returns a sorted copy of the occupant set.
func (r *Room) Occupants() []domain.ConnID {
	return r.Others("")
}

func (r *Room) Info() RoomInfo {
	return RoomInfo{
		ID:        r.id,
		Occupants: len(r.occupants),
		Full:      r.IsFull(),
	}
}

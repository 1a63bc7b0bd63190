package core

import (
	"errors"
	"testing"

	"github.com/dkeye/Relay/internal/domain"
)

func TestRoomAddRespectsCapacity(t *testing.T) {
	r := NewRoom("abc")

	if err := r.Add("x"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := r.Add("y"); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if err := r.Add("z"); !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("third add error = %v, want ErrRoomFull", err)
	}
	if r.Count() != domain.MaxClients {
		t.Errorf("Count() = %d, want %d", r.Count(), domain.MaxClients)
	}
	if !r.IsFull() {
		t.Error("IsFull() = false on a full room")
	}
}

func TestRoomAddDuplicate(t *testing.T) {
	r := NewRoom("abc")
	_ = r.Add("x")

	if err := r.Add("x"); !errors.Is(err, domain.ErrAlreadyInRoom) {
		t.Fatalf("duplicate add error = %v, want ErrAlreadyInRoom", err)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d after duplicate add", r.Count())
	}
}

func TestRoomRemove(t *testing.T) {
	r := NewRoom("abc")
	_ = r.Add("x")

	if r.Remove("y") {
		t.Error("Remove of absent occupant reported true")
	}
	if !r.Remove("x") {
		t.Error("Remove of present occupant reported false")
	}
	if !r.IsEmpty() {
		t.Error("room should be empty")
	}
}

func TestRoomOthersExcludesSource(t *testing.T) {
	r := NewRoom("abc")
	_ = r.Add("b")
	_ = r.Add("a")

	others := r.Others("a")
	if len(others) != 1 || others[0] != "b" {
		t.Fatalf("Others(a) = %v, want [b]", others)
	}
	if got := r.Others("nobody"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Others(nobody) = %v, want [a b]", got)
	}
}

func TestRoomInfo(t *testing.T) {
	r := NewRoom("abc")
	_ = r.Add("a")

	info := r.Info()
	if info.ID != "abc" || info.Occupants != 1 || info.Full {
		t.Fatalf("Info() = %+v", info)
	}
	_ = r.Add("b")
	if !r.Info().Full {
		t.Fatal("Info().Full = false on a full room")
	}
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRoomID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"empty", "", false},
		{"single char", "a", true},
		{"letters digits", "abc123", true},
		{"hyphen underscore", "a-b_c", true},
		{"exactly ten", strings.Repeat("x", 10), true},
		{"eleven", strings.Repeat("x", 11), false},
		{"space", "a b", false},
		{"dot", "a.b", false},
		{"slash", "bad/id", false},
		{"non ascii letter", "café", false},
		{"trailing newline", "abc\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseRoomID(tt.raw)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseRoomID(%q) returned error: %v", tt.raw, err)
				}
				if string(id) != tt.raw {
					t.Errorf("ParseRoomID(%q) = %q", tt.raw, id)
				}
				return
			}
			if !errors.Is(err, ErrInvalidRoomID) {
				t.Errorf("ParseRoomID(%q) error = %v, want ErrInvalidRoomID", tt.raw, err)
			}
		})
	}
}

func TestNewConnIDIsUnique(t *testing.T) {
	seen := make(map[ConnID]struct{})
	for i := 0; i < 100; i++ {
		id := NewConnID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate connection id %s", id)
		}
		seen[id] = struct{}{}
	}
}

package domain

import (
	"errors"
	"regexp"
)

// MaxClients is the capacity of every room.
const MaxClients = 2

// MaxRoomIDLen bounds the length of a room identifier.
const MaxRoomIDLen = 10

type RoomID string

var (
	ErrInvalidRoomID     = errors.New("invalid room id")
	ErrRoomFull          = errors.New("room full")
	ErrAlreadyInRoom     = errors.New("already in room")
	ErrUnknownConnection = errors.New("unknown connection")
)

var roomIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,10}$`)

// ParseRoomID checks raw against the room-identifier policy: ASCII letters,
// digits, hyphen and underscore, between 1 and MaxRoomIDLen characters.
func ParseRoomID(raw string) (RoomID, error) {
	if !roomIDPattern.MatchString(raw) {
		return "", ErrInvalidRoomID
	}
	return RoomID(raw), nil
}

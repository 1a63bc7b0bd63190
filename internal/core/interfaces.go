package core

import "github.com/dkeye/Relay/internal/domain"

// Frame is an opaque application payload. The core never looks inside.
type Frame []byte

// Kind tags a notification addressed to a single connection.
type Kind int

const (
	KindRoomJoin Kind = iota
	KindPartnerJoin
	KindPartnerLeave
	KindRelay
)

func (k Kind) String() string {
	switch k {
	case KindRoomJoin:
		return "room_join"
	case KindPartnerJoin:
		return "partner_join"
	case KindPartnerLeave:
		return "partner_leave"
	case KindRelay:
		return "message"
	default:
		return "unknown"
	}
}

// Notification is what the coordinator asks the transport to deliver.
// Success is meaningful for KindRoomJoin, Payload for KindRelay.
type Notification struct {
	Kind    Kind
	Success bool
	Payload Frame
}

// Transport delivers notifications to live connections.
// Send must not block; a slow or closed peer is reported as an error.
type Transport interface {
	Send(to domain.ConnID, n Notification) error
}

// RoomInfo is the occupancy tuple handed to status publishers and APIs.
type RoomInfo struct {
	ID        domain.RoomID `json:"id"`
	Occupants int           `json:"occupants"`
	Full      bool          `json:"full"`
}

// StatusPublisher renders room occupancy somewhere durable.
// Publish is called with the coordinator lock held and must return quickly.
type StatusPublisher interface {
	Publish(rooms []RoomInfo)
}

// PublisherFunc adapts a plain function to StatusPublisher.
type PublisherFunc func(rooms []RoomInfo)

func (f PublisherFunc) Publish(rooms []RoomInfo) { f(rooms) }

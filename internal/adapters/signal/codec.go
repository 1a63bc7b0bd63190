package signal

import (
	"bytes"
	"fmt"

	"github.com/dkeye/Relay/internal/core"
	"github.com/goccy/go-json"
)

const (
	typeRoomEnter    = "room_enter"
	typeRoomLeave    = "room_leave"
	typeRoomJoin     = "room_join"
	typePartnerJoin  = "partner_join"
	typePartnerLeave = "partner_leave"
	typeMessage      = "message"
	typePing         = "ping"
	typePong         = "pong"
	typeWhoAmI       = "whoami"
	typeError        = "error"
)

// envelope is the inbound frame shape. Payload is kept verbatim.
type envelope struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"room_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, err
	}
	if env.Type == "" {
		return envelope{}, fmt.Errorf("missing type")
	}
	return env, nil
}

var nullPayload = []byte("null")

// encodeNotification renders n as an outbound frame. Relay payloads are
// spliced in byte for byte rather than re-marshalled.
func encodeNotification(n core.Notification) (core.Frame, error) {
	switch n.Kind {
	case core.KindRoomJoin:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Success bool   `json:"success"`
		}{typeRoomJoin, n.Success})
	case core.KindPartnerJoin:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{typePartnerJoin})
	case core.KindPartnerLeave:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{typePartnerLeave})
	case core.KindRelay:
		payload := []byte(n.Payload)
		if len(bytes.TrimSpace(payload)) == 0 {
			payload = nullPayload
		}
		var buf bytes.Buffer
		buf.Grow(len(payload) + 32)
		buf.WriteString(`{"type":"` + typeMessage + `","payload":`)
		buf.Write(payload)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown notification kind %d", n.Kind)
	}
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type whoAmIFrame struct {
	Type string `json:"type"`
	Conn string `json:"conn"`
	Room string `json:"room,omitempty"`
}

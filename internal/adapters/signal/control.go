package signal

import "github.com/dkeye/Relay/internal/domain"

func (ctl *SignalWSController) handlePing(_ domain.ConnID, conn *wsConn, _ envelope) {
	ctl.sendJSON(conn, struct {
		Type string `json:"type"`
	}{Type: typePong})
}

func (ctl *SignalWSController) handleWhoAmI(sid domain.ConnID, conn *wsConn, _ envelope) {
	resp := whoAmIFrame{Type: typeWhoAmI, Conn: string(sid)}
	if room, ok := ctl.Orch.RoomOf(sid); ok {
		resp.Room = string(room)
	}
	ctl.sendJSON(conn, resp)
}

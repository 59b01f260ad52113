package sieve

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// WsUpgrade is a pending websocket upgrade extracted by Ws. The filter
// cannot complete the handshake itself because the handshake needs the
// raw connection, which only the serving layer holds. Server recognizes
// a WsUpgrade in the final tuple and finishes the upgrade there.
//
// Rendered through any other driver, a WsUpgrade answers 426 Upgrade
// Required since there is no connection to take over.
type WsUpgrade struct {
	handler  func(*websocket.Conn)
	upgrader websocket.Upgrader
}

// Render implements Reply for drivers that cannot hijack the connection.
func (u *WsUpgrade) Render() *Response {
	resp := Text("upgrade required").Render()
	resp.Status = http.StatusUpgradeRequired
	return resp.SetHeader("Upgrade", "websocket")
}

// upgrade completes the handshake. On failure the upgrader has already
// written an HTTP error to w.
func (u *WsUpgrade) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return u.upgrader.Upgrade(w, r, nil)
}

// Ws matches websocket handshake requests and extracts a pending
// upgrade. Non-handshake requests reject with KindNotMatched so an Or
// can route them to a plain HTTP branch instead.
//
// The handler receives the accepted connection and owns its lifecycle,
// including closing it:
//
//	echo := sieve.Path("/ws").And(sieve.Ws(func(conn *websocket.Conn) {
//		defer conn.Close()
//		for {
//			mt, msg, err := conn.ReadMessage()
//			if err != nil {
//				return
//			}
//			if err := conn.WriteMessage(mt, msg); err != nil {
//				return
//			}
//		}
//	}))
func Ws(handler func(conn *websocket.Conn)) Filter {
	return Extract(func(_ context.Context, rt *Route) (*WsUpgrade, error) {
		if !isUpgradeRequest(rt) {
			return nil, Reject(KindNotMatched, "not a websocket handshake")
		}
		return &WsUpgrade{handler: handler}, nil
	})
}

// isUpgradeRequest detects the handshake. Routes backed by a real
// request defer to gorilla's check; synthetic routes fall back to the
// Connection and Upgrade headers.
func isUpgradeRequest(rt *Route) bool {
	if req := rt.Request(); req != nil {
		return websocket.IsWebSocketUpgrade(req)
	}
	up, _ := rt.HeaderValue("Upgrade")
	conn, _ := rt.HeaderValue("Connection")
	return strings.EqualFold(up, "websocket") && strings.Contains(strings.ToLower(conn), "upgrade")
}

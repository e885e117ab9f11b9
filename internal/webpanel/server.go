package webpanel

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	// The panel is a developer-facing overlay served on the headset's own
	// network; cross-origin pages are allowed in.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler returns the panel's HTTP mux: a JSON snapshot endpoint, the
// websocket stream, and static files from ./web as the root.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/ws", h.handleWS)
	mux.Handle("/", http.FileServer(http.Dir("web")))
	return mux
}

// Serve blocks serving the panel on the given port.
func (h *Hub) Serve(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Infof("webpanel: listening on %s", addr)
	return http.ListenAndServe(addr, h.Handler())
}

func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	state := h.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		log.Errorf("webpanel: json encode error: %v", err)
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("webpanel: websocket upgrade failed: %v", err)
		return
	}

	// Full resync first, then incremental events. The snapshot goes out
	// under the lock, before the connection joins the broadcast set, so no
	// event can interleave with it.
	h.mu.Lock()
	state := h.copyState()
	payload, err := json.Marshal(event{Kind: "snapshot", State: &state})
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, payload)
	}
	if err != nil {
		h.mu.Unlock()
		log.Warnf("webpanel: snapshot send failed: %v", err)
		conn.Close()
		return
	}
	h.conns[conn] = true
	h.mu.Unlock()

	// The panel never reads commands back; the loop only detects close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

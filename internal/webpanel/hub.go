// Package webpanel is the browser-facing render surface: panel writes mutate
// a local state mirror and are broadcast to every connected websocket as
// small events. The browser-side map component is the external map surface;
// pins reach it as add/remove commands.
package webpanel

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/mappin"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/panel"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// PinState is one marker currently placed on the browser map.
type PinState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// State mirrors the render tree for the browser panel.
type State struct {
	Texts          map[panel.Field]string `json:"texts"`
	ActiveIcon     reading.Source         `json:"active_icon"`
	Compass        panel.Quaternion       `json:"compass"`
	ControlEnabled bool                   `json:"control_enabled"`
	ControlTint    panel.Tint             `json:"control_tint"`
	Pins           map[string]PinState    `json:"pins"`
}

// event is one incremental update pushed over the websocket.
type event struct {
	Kind    string           `json:"kind"`
	Field   panel.Field      `json:"field,omitempty"`
	Text    string           `json:"text,omitempty"`
	Source  reading.Source   `json:"source"`
	Compass panel.Quaternion `json:"compass"`
	Enabled bool             `json:"enabled"`
	Tint    panel.Tint       `json:"tint,omitempty"`
	PinID   string           `json:"pin_id,omitempty"`
	Pin     PinState         `json:"pin,omitempty"`
	State   *State           `json:"state,omitempty"`
}

// Hub implements both panel.Surface and mappin.MapSurface on top of a set
// of websocket connections.
type Hub struct {
	mu      sync.Mutex
	state   State
	conns   map[*websocket.Conn]bool
	nextPin int
}

func NewHub() *Hub {
	return &Hub{
		state: State{
			Texts:   make(map[panel.Field]string),
			Compass: panel.Identity(),
			Pins:    make(map[string]PinState),
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

// SetText implements panel.Surface.
func (h *Hub) SetText(field panel.Field, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Texts[field] = text
	h.broadcast(event{Kind: "text", Field: field, Text: text})
}

// SetIconActive implements panel.Surface. Exactly one icon is active at a
// time; the browser disables the other four on receipt.
func (h *Hub) SetIconActive(src reading.Source) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.ActiveIcon = src
	h.broadcast(event{Kind: "icon", Source: src})
}

// SetCompassRotation implements panel.Surface.
func (h *Hub) SetCompassRotation(q panel.Quaternion) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Compass = q
	h.broadcast(event{Kind: "compass", Compass: q})
}

// SetControlEnabled implements panel.Surface.
func (h *Hub) SetControlEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.ControlEnabled = enabled
	h.broadcast(event{Kind: "control_enabled", Enabled: enabled})
}

// SetControlTint implements panel.Surface.
func (h *Hub) SetControlTint(t panel.Tint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.ControlTint = t
	h.broadcast(event{Kind: "control_tint", Tint: t})
}

// AddPin implements mappin.MapSurface.
func (h *Hub) AddPin(lat, lon float64) (mappin.Pin, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextPin++
	id := fmt.Sprintf("pin-%d", h.nextPin)
	pin := PinState{Latitude: lat, Longitude: lon}
	h.state.Pins[id] = pin
	h.broadcast(event{Kind: "pin_add", PinID: id, Pin: pin})
	return id, nil
}

// RemovePin implements mappin.MapSurface.
func (h *Hub) RemovePin(p mappin.Pin) error {
	id, ok := p.(string)
	if !ok {
		return fmt.Errorf("webpanel: foreign pin handle %T", p)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.state.Pins[id]; !ok {
		return fmt.Errorf("webpanel: unknown pin %s", id)
	}
	delete(h.state.Pins, id)
	h.broadcast(event{Kind: "pin_remove", PinID: id})
	return nil
}

// Snapshot returns a deep copy of the current state.
func (h *Hub) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.copyState()
}

// copyState must be called with the lock held.
func (h *Hub) copyState() State {
	s := h.state
	s.Texts = make(map[panel.Field]string, len(h.state.Texts))
	for k, v := range h.state.Texts {
		s.Texts[k] = v
	}
	s.Pins = make(map[string]PinState, len(h.state.Pins))
	for k, v := range h.state.Pins {
		s.Pins[k] = v
	}
	return s
}

// broadcast must be called with the lock held. A write failure drops the
// connection; the browser reconnects and resyncs from a snapshot.
func (h *Hub) broadcast(ev event) {
	if len(h.conns) == 0 {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Errorf("webpanel: event marshal error: %v", err)
		return
	}

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("webpanel: dropping client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Package panel turns the current location readings into render-tree
// mutations: text fields, status icons, a compass rotation, and the state
// of the mobile-kit control. Panels hold no state of their own beyond a
// render-skip cache; every refresh is a pure function of the store.
package panel

import (
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Field names a text element on a render surface.
type Field string

const (
	// FieldCompactStatus is the single accuracy/heading line on the hand panel.
	FieldCompactStatus Field = "compact_status"
	// FieldDetailedPrimary is the multi-line device block on the floating panel.
	FieldDetailedPrimary Field = "detailed_primary"
	// FieldDetailedSecondary is the mobile-kit block on the floating panel.
	FieldDetailedSecondary Field = "detailed_secondary"
)

// Tint is the visual tint applied to the mobile-kit control.
type Tint string

const (
	TintGray   Tint = "gray"
	TintWhite  Tint = "white"
	TintYellow Tint = "yellow"
	TintGreen  Tint = "green"
)

// Surface is the slice of the render tree a panel mutates. Implementations
// must tolerate partial wiring: a write against an element that is not
// configured logs a warning and is skipped, never fails.
type Surface interface {
	SetText(field Field, text string)
	SetIconActive(src reading.Source)
	SetCompassRotation(q Quaternion)
	SetControlEnabled(enabled bool)
	SetControlTint(t Tint)
}

// Multi fans panel writes out to every given surface.
func Multi(surfaces ...Surface) Surface {
	return multiSurface(surfaces)
}

type multiSurface []Surface

func (m multiSurface) SetText(field Field, text string) {
	for _, s := range m {
		s.SetText(field, text)
	}
}

func (m multiSurface) SetIconActive(src reading.Source) {
	for _, s := range m {
		s.SetIconActive(src)
	}
}

func (m multiSurface) SetCompassRotation(q Quaternion) {
	for _, s := range m {
		s.SetCompassRotation(q)
	}
}

func (m multiSurface) SetControlEnabled(enabled bool) {
	for _, s := range m {
		s.SetControlEnabled(enabled)
	}
}

func (m multiSurface) SetControlTint(t Tint) {
	for _, s := range m {
		s.SetControlTint(t)
	}
}

func warnNoSurface(what string) {
	log.Warnf("panel: no surface configured, skipping %s", what)
}

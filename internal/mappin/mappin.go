// Copyright (c) 2026 Siekerman Technology
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package mappin

import (
	log "github.com/sirupsen/logrus"
)

// Pin is an opaque marker handle owned by the external map surface.
type Pin interface{}

// MapSurface is the externally supplied map component. The synchronizer
// never moves a pin: it removes and recreates.
type MapSurface interface {
	AddPin(lat, lon float64) (Pin, error)
	RemovePin(p Pin) error
}

// Synchronizer keeps at most one pin for one location source on the map.
type Synchronizer struct {
	surface MapSurface
	source  string
	pin     Pin
}

// New creates a synchronizer for the named source. A nil surface is legal
// and turns every refresh into a logged no-op (unconfigured map wiring).
func New(surface MapSurface, source string) *Synchronizer {
	return &Synchronizer{surface: surface, source: source}
}

// Refresh replaces the pin wholesale. hasData=false removes any existing
// pin and clears the handle. There is no coordinate diffing: an active
// refresh with unchanged coordinates still removes and recreates, and a
// failure between the two leaves no pin rather than a stale one.
func (s *Synchronizer) Refresh(lat, lon float64, hasData bool) {
	if s.surface == nil {
		log.Warnf("mappin: no map surface configured for %s, skipping refresh", s.source)
		return
	}

	if s.pin != nil {
		if err := s.surface.RemovePin(s.pin); err != nil {
			log.Errorf("mappin: remove pin for %s: %v", s.source, err)
		}
		s.pin = nil
	}

	if !hasData {
		return
	}

	pin, err := s.surface.AddPin(lat, lon)
	if err != nil {
		log.Errorf("mappin: add pin for %s: %v", s.source, err)
		return
	}
	s.pin = pin
}

// HasPin reports whether a pin is currently placed.
func (s *Synchronizer) HasPin() bool {
	return s.pin != nil
}

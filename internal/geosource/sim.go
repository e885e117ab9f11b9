// Copyright (c) 2026 Siekerman Technology
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package geosource

import (
	"math"
	"time"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

const metersPerDegreeLat = 111320.0

// SimProvider fabricates a deterministic circular track around a configured
// center so the hub can run without GPS hardware. The track course doubles
// as the compass heading, pushed alongside each position sample.
type SimProvider struct {
	CenterLat float64
	CenterLon float64
	RadiusM   float64
	Period    time.Duration

	now      func() time.Time
	headings []func(float64)
}

func NewSim(centerLat, centerLon float64) *SimProvider {
	return &SimProvider{
		CenterLat: centerLat,
		CenterLon: centerLon,
		RadiusM:   150,
		Period:    2 * time.Minute,
		now:       time.Now,
	}
}

// CurrentPosition returns the simulated fix for the current instant and
// pushes the matching track heading. Deterministic for a given time.
func (s *SimProvider) CurrentPosition() (reading.Fix, error) {
	now := s.now()

	period := s.Period
	if period <= 0 {
		period = 2 * time.Minute
	}
	phase := float64(now.UnixNano()%period.Nanoseconds()) / float64(period.Nanoseconds())
	w := 2 * math.Pi * phase

	radiusDeg := s.RadiusM / metersPerDegreeLat
	lat := s.CenterLat + radiusDeg*math.Sin(w)
	lon := s.CenterLon + radiusDeg*math.Cos(w)/math.Cos(s.CenterLat*math.Pi/180)

	// Course along the circle: tangent to the track, normalized to [0, 360).
	course := math.Mod(360-w*180/math.Pi, 360)

	for _, fn := range s.headings {
		fn(course)
	}

	return reading.Fix{
		Source:             reading.SourceFused,
		Latitude:           lat,
		Longitude:          lon,
		HorizontalAccuracy: 3.5,
		Altitude:           12,
		VerticalAccuracy:   6,
	}, nil
}

// Subscribe registers a heading callback, invoked on each position sample.
func (s *SimProvider) Subscribe(fn func(headingDeg float64)) {
	s.headings = append(s.headings, fn)
}

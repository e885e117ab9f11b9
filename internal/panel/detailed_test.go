package panel

import (
	"strings"
	"testing"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/mappin"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// fakeMap counts pins by handle identity.
type fakeMap struct {
	next    int
	present map[int]bool
	adds    int
	removes int
}

func newFakeMap() *fakeMap { return &fakeMap{present: make(map[int]bool)} }

func (m *fakeMap) AddPin(lat, lon float64) (mappin.Pin, error) {
	m.next++
	m.present[m.next] = true
	m.adds++
	return m.next, nil
}

func (m *fakeMap) RemovePin(p mappin.Pin) error {
	delete(m.present, p.(int))
	m.removes++
	return nil
}

func (m *fakeMap) count() int { return len(m.present) }

func newDetailedUnderTest(simulated, enabled bool) (*Detailed, *reading.Store, *fakeSurface, *fakeMap) {
	store := reading.NewStore()
	surface := newFakeSurface()
	mapSurface := newFakeMap()
	d := NewDetailed(store, surface,
		mappin.New(mapSurface, "device"),
		mappin.New(mapSurface, "mobilekit"),
		simulated, enabled)
	return d, store, surface, mapSurface
}

func latlon(lat, lon float64) reading.Update {
	return reading.Update{Latitude: &lat, Longitude: &lon}
}

func TestClassifySecondary(t *testing.T) {
	cases := []struct {
		name      string
		simulated bool
		enabled   bool
		r         reading.Reading
		want      DisplayState
	}{
		{"simulator wins", true, true, reading.Reading{Latitude: 1, Longitude: 1}, StateUnavailable},
		{"feed disabled", false, false, reading.Reading{Latitude: 1, Longitude: 1}, StateAvailable},
		{"enabled, no reading yet", false, true, reading.Reading{}, StateNoData},
		{"enabled with data", false, true, reading.Reading{Latitude: 52.2, Longitude: 5.1}, StateActive},
		{"origin sentinel", false, true, reading.Reading{Altitude: 10}, StateNoData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifySecondary(tc.simulated, tc.enabled, tc.r); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestSecondaryFourWayMapping(t *testing.T) {
	cases := []struct {
		name        string
		simulated   bool
		enabled     bool
		update      *reading.Update
		wantText    string
		wantEnabled bool
		wantTint    Tint
		wantPin     bool
	}{
		{"unavailable", true, true, nil, MsgUnavailable, false, TintGray, false},
		{"available", false, false, nil, MsgAvailable, false, TintWhite, false},
		{"no data", false, true, nil, MsgNoData, false, TintYellow, false},
		{"active", false, true, ptrUpdate(latlon(52.2175, 5.1696)), "Latitude: 52.217500", true, TintGreen, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, store, surface, mapSurface := newDetailedUnderTest(tc.simulated, tc.enabled)
			if tc.update != nil {
				store.ApplySecondary(*tc.update)
			}

			d.RefreshSecondary()

			text := surface.texts[FieldDetailedSecondary]
			if !strings.Contains(text, tc.wantText) {
				t.Fatalf("text %q does not contain %q", text, tc.wantText)
			}
			if !surface.enabledSet || surface.enabled != tc.wantEnabled {
				t.Fatalf("control enabled: got %v want %v", surface.enabled, tc.wantEnabled)
			}
			if surface.tint != tc.wantTint {
				t.Fatalf("tint: got %q want %q", surface.tint, tc.wantTint)
			}
			if got := mapSurface.count() > 0; got != tc.wantPin {
				t.Fatalf("pin present: got %v want %v", got, tc.wantPin)
			}
		})
	}
}

func ptrUpdate(u reading.Update) *reading.Update { return &u }

func TestSecondaryActiveBackToNoDataRemovesPin(t *testing.T) {
	d, store, _, mapSurface := newDetailedUnderTest(false, true)

	store.ApplySecondary(latlon(52.2175, 5.1696))
	d.RefreshSecondary()
	if mapSurface.count() != 1 {
		t.Fatalf("active: expected 1 pin, got %d", mapSurface.count())
	}

	// Coordinates returning to the origin sentinel must clear the pin.
	store.ApplySecondary(latlon(0, 0))
	d.RefreshSecondary()
	if mapSurface.count() != 0 {
		t.Fatalf("no data: expected 0 pins, got %d", mapSurface.count())
	}
}

func TestSecondaryActiveRefreshReplacesPin(t *testing.T) {
	d, store, _, mapSurface := newDetailedUnderTest(false, true)

	store.ApplySecondary(latlon(52.2175, 5.1696))
	d.RefreshSecondary()
	d.RefreshSecondary()

	// No coordinate diffing: every active refresh removes and recreates.
	if mapSurface.adds != 2 || mapSurface.removes != 1 {
		t.Fatalf("expected 2 adds / 1 remove, got %d / %d", mapSurface.adds, mapSurface.removes)
	}
	if mapSurface.count() != 1 {
		t.Fatalf("expected exactly 1 pin, got %d", mapSurface.count())
	}
}

func TestPrimaryTextAndPin(t *testing.T) {
	d, store, surface, mapSurface := newDetailedUnderTest(false, true)

	store.SetPrimaryFix(reading.Fix{
		Source:             reading.SourceGNSS,
		Latitude:           52.2175,
		Longitude:          5.1696,
		HorizontalAccuracy: 9.08,
		Altitude:           15.31,
		VerticalAccuracy:   4.2,
	})
	store.SetPrimaryHeading(45)

	d.RefreshPrimary()

	text := surface.texts[FieldDetailedPrimary]
	for _, want := range []string{
		"Source: GNSS / GPS",
		"Latitude: 52.217500",
		"Longitude: 5.169600",
		"Horizontal accuracy: 9.08 m",
		"Altitude: 15.31 m",
		"Vertical accuracy: 4.20 m",
		"Heading: 45.0°",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("primary text missing %q:\n%s", want, text)
		}
	}
	if mapSurface.count() != 1 {
		t.Fatalf("expected device pin, got %d pins", mapSurface.count())
	}
}

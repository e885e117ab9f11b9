package geosource

import (
	"fmt"
	"math"
	"testing"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// sentence wraps an NMEA body with the leading $ and a computed checksum.
func sentence(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("$%s*%02X", body, sum)
}

func TestNoFixBeforeFirstSentence(t *testing.T) {
	p := &NMEAProvider{}
	if _, err := p.CurrentPosition(); err != ErrNoFix {
		t.Fatalf("expected ErrNoFix, got %v", err)
	}
}

func TestRMCSetsPositionAndPushesHeading(t *testing.T) {
	p := &NMEAProvider{}

	var headings []float64
	p.Subscribe(func(h float64) { headings = append(headings, h) })

	p.handleLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))

	fix, err := p.CurrentPosition()
	if err != nil {
		t.Fatalf("CurrentPosition: %v", err)
	}
	if math.Abs(fix.Latitude-48.1173) > 0.0001 {
		t.Fatalf("latitude: got %v", fix.Latitude)
	}
	if math.Abs(fix.Longitude-11.5166667) > 0.0001 {
		t.Fatalf("longitude: got %v", fix.Longitude)
	}
	if len(headings) != 1 || headings[0] != 84.4 {
		t.Fatalf("headings: got %v", headings)
	}
}

func TestVoidRMCIgnored(t *testing.T) {
	p := &NMEAProvider{}
	p.handleLine(sentence("GPRMC,123519,V,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))

	if _, err := p.CurrentPosition(); err != ErrNoFix {
		t.Fatalf("void sentence must not produce a fix, got err=%v", err)
	}
}

func TestGGASetsQualityAltitudeAccuracy(t *testing.T) {
	p := &NMEAProvider{}
	p.handleLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	p.handleLine(sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"))

	fix, err := p.CurrentPosition()
	if err != nil {
		t.Fatalf("CurrentPosition: %v", err)
	}
	if fix.Source != reading.SourceGNSS {
		t.Fatalf("source: got %q", fix.Source)
	}
	if fix.Altitude != 545.4 {
		t.Fatalf("altitude: got %v", fix.Altitude)
	}
	if math.Abs(fix.HorizontalAccuracy-0.9*uereMeters) > 1e-9 {
		t.Fatalf("horizontal accuracy: got %v", fix.HorizontalAccuracy)
	}
}

func TestGSASetsVerticalAccuracy(t *testing.T) {
	p := &NMEAProvider{}
	p.handleLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W"))
	p.handleLine(sentence("GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1"))

	fix, _ := p.CurrentPosition()
	if math.Abs(fix.VerticalAccuracy-2.1*uereMeters) > 1e-9 {
		t.Fatalf("vertical accuracy: got %v", fix.VerticalAccuracy)
	}
}

func TestSourceFromQuality(t *testing.T) {
	cases := map[string]reading.Source{
		"0":  reading.SourceNotAvailable,
		"1":  reading.SourceGNSS,
		"2":  reading.SourceFused,
		"3":  reading.SourceGNSS,
		"4":  reading.SourceFused,
		"5":  reading.SourceFused,
		"6":  reading.SourceFused,
		"9":  reading.SourceUnknown,
		"":   reading.SourceUnknown,
		"xx": reading.SourceUnknown,
	}
	for quality, want := range cases {
		if got := sourceFromQuality(quality); got != want {
			t.Fatalf("quality %q: got %q want %q", quality, got, want)
		}
	}
}

func TestGarbageLinesIgnored(t *testing.T) {
	p := &NMEAProvider{}
	p.handleLine("")
	p.handleLine("not an nmea line")
	p.handleLine("$GPRMC,truncated")
	p.handleLine(sentence("GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W") + "corrupt")

	if _, err := p.CurrentPosition(); err != ErrNoFix {
		t.Fatalf("garbage must not produce a fix, got err=%v", err)
	}
}

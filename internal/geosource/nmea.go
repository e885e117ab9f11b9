package geosource

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Nominal user range error in meters, used to turn dilution-of-precision
// values into an accuracy estimate.
const uereMeters = 5.0

// ErrNoFix is returned while the receiver has not yet produced a valid fix.
var ErrNoFix = errors.New("no GPS fix received yet")

// NMEAProvider reads NMEA sentences from the device GPS serial port and
// keeps the latest combined fix. RMC supplies position and course, GGA the
// fix quality and altitude, GSA the vertical dilution.
type NMEAProvider struct {
	mu       sync.RWMutex
	fix      reading.Fix
	haveFix  bool
	headings []func(float64)
}

// OpenNMEA opens the serial port and starts the background read loop.
func OpenNMEA(portName string, baudRate uint) (*NMEAProvider, error) {
	serialOpts := serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, err
	}
	log.Infof("geosource: GPS serial port opened on %s at %d baud", portName, baudRate)

	p := &NMEAProvider{}
	go p.readLoop(port)
	return p, nil
}

// CurrentPosition returns the latest combined fix.
func (p *NMEAProvider) CurrentPosition() (reading.Fix, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.haveFix {
		return reading.Fix{}, ErrNoFix
	}
	return p.fix, nil
}

// Subscribe registers a heading callback, invoked on every valid RMC course.
func (p *NMEAProvider) Subscribe(fn func(headingDeg float64)) {
	p.mu.Lock()
	p.headings = append(p.headings, fn)
	p.mu.Unlock()
}

func (p *NMEAProvider) readLoop(port io.ReadCloser) {
	defer port.Close()

	reader := bufio.NewReader(port)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Errorf("geosource: GPS read error: %v", err)
			return
		}
		p.handleLine(strings.TrimSpace(line))
	}
}

func (p *NMEAProvider) handleLine(line string) {
	if line == "" || !strings.HasPrefix(line, "$") {
		return
	}

	sentence, err := nmea.Parse(line)
	if err != nil {
		// Noisy receivers emit partial sentences on power-up.
		return
	}

	switch sentence.DataType() {
	case nmea.TypeRMC:
		m := sentence.(nmea.RMC)
		if m.Validity != "A" {
			return
		}
		p.mu.Lock()
		p.fix.Latitude = m.Latitude
		p.fix.Longitude = m.Longitude
		p.haveFix = true
		fns := p.headings
		p.mu.Unlock()
		for _, fn := range fns {
			fn(m.Course)
		}

	case nmea.TypeGGA:
		m := sentence.(nmea.GGA)
		p.mu.Lock()
		p.fix.Source = sourceFromQuality(m.FixQuality)
		p.fix.Altitude = m.Altitude
		p.fix.HorizontalAccuracy = m.HDOP * uereMeters
		p.mu.Unlock()

	case nmea.TypeGSA:
		m := sentence.(nmea.GSA)
		p.mu.Lock()
		p.fix.VerticalAccuracy = m.VDOP * uereMeters
		p.mu.Unlock()
	}
}

// sourceFromQuality maps a GGA fix quality indicator to the source labels
// the panels understand. Augmented modes count as fused.
func sourceFromQuality(quality string) reading.Source {
	switch quality {
	case "0":
		return reading.SourceNotAvailable
	case "1", "3":
		return reading.SourceGNSS
	case "2", "4", "5", "6":
		return reading.SourceFused
	default:
		return reading.SourceUnknown
	}
}

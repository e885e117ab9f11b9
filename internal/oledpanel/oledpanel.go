// Package oledpanel drives an SSD1306 hand display as a render surface for
// the compact panel. Only the compact fields are renderable here; the
// floating-panel writes are accepted and ignored.
package oledpanel

import (
	"fmt"
	"image"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/panel"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Panel is a 128x64 I2C OLED rendering the compact location panel.
type Panel struct {
	dev *ssd1306.Dev
	bus i2c.BusCloser

	mu      sync.Mutex
	status  string
	icon    reading.Source
	compass panel.Quaternion
}

// Open initializes periph, opens the default I2C bus, and brings up the
// display at the given address.
func Open(addr uint16) (*Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Infof("oledpanel: display initialized at 0x%02X", addr)

	p := &Panel{dev: dev, bus: bus, compass: panel.Identity()}
	if err := p.splash(); err != nil {
		log.Warnf("oledpanel: error showing splash: %v", err)
	}
	return p, nil
}

// Close releases the I2C bus.
func (p *Panel) Close() error {
	return p.bus.Close()
}

// SetText implements panel.Surface for the compact status line.
func (p *Panel) SetText(field panel.Field, text string) {
	if field != panel.FieldCompactStatus {
		return
	}
	p.mu.Lock()
	p.status = text
	p.mu.Unlock()
	p.redraw()
}

// SetIconActive implements panel.Surface.
func (p *Panel) SetIconActive(src reading.Source) {
	p.mu.Lock()
	p.icon = src
	p.mu.Unlock()
	p.redraw()
}

// SetCompassRotation implements panel.Surface.
func (p *Panel) SetCompassRotation(q panel.Quaternion) {
	p.mu.Lock()
	p.compass = q
	p.mu.Unlock()
	p.redraw()
}

// SetControlEnabled is a floating-panel concern; nothing to render here.
func (p *Panel) SetControlEnabled(bool) {}

// SetControlTint is a floating-panel concern; nothing to render here.
func (p *Panel) SetControlTint(panel.Tint) {}

func (p *Panel) redraw() {
	if p.dev == nil {
		log.Warn("oledpanel: display not configured, skipping redraw")
		return
	}

	p.mu.Lock()
	status := p.status
	icon := p.icon
	headingDeg := p.compass.Angle() * 180 / math.Pi
	p.mu.Unlock()

	img := blankImage()
	drawer := textDrawer(img)

	drawer.Dot = fixed.P(0, 13)
	drawer.DrawBytes([]byte(icon.ShortLabel()))

	drawer.Dot = fixed.P(0, 26)
	drawer.DrawBytes([]byte(status))

	drawer.Dot = fixed.P(0, 39)
	drawer.DrawBytes([]byte(fmt.Sprintf("HDG %.0f", headingDeg)))

	if err := p.dev.Draw(p.dev.Bounds(), img, image.Point{}); err != nil {
		log.Errorf("oledpanel: draw error: %v", err)
	}
}

func (p *Panel) splash() error {
	img := blankImage()
	drawer := textDrawer(img)

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("Location Tools"))
	drawer.Dot = fixed.P(10, 43)
	drawer.DrawBytes([]byte("Waiting..."))

	return p.dev.Draw(p.dev.Bounds(), img, image.Point{})
}

func blankImage() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	return img
}

func textDrawer(img *image1bit.VerticalLSB) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
}

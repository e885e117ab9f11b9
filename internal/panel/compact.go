package panel

import (
	"math"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Compact renders the hand panel: the source status icon, one line of
// accuracy/heading text, and the compass icon rotation. Refresh is driven
// by the hub's frame ticker, not by store notifications.
type Compact struct {
	store   *reading.Store
	surface Surface

	// Render-skip cache only: icon visibility writes are suppressed while
	// the source stays the same. Not load-bearing for correctness.
	lastSource reading.Source
	haveLast   bool
}

func NewCompact(store *reading.Store, surface Surface) *Compact {
	return &Compact{store: store, surface: surface}
}

// Refresh re-renders the hand panel from the current primary reading.
// Idempotent; called once per frame tick.
func (c *Compact) Refresh() {
	if c.surface == nil {
		warnNoSurface("compact panel refresh")
		return
	}

	r := c.store.Primary()

	if !c.haveLast || r.Source != c.lastSource {
		c.surface.SetIconActive(r.Source)
		c.lastSource = r.Source
		c.haveLast = true
	}

	c.surface.SetText(FieldCompactStatus, FormatCompact(r))
	c.surface.SetCompassRotation(AboutForward(r.Heading * math.Pi / 180))
}

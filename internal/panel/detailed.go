package panel

import (
	"github.com/siekermantechnology/SnapOSLocationTools/internal/mappin"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Fixed messages for the non-active mobile-kit states.
const (
	MsgUnavailable = "Mobile Kit is not available in the simulator"
	MsgAvailable   = "Mobile Kit available. Phone feed is disabled."
	MsgNoData      = "No Mobile Kit data"
)

// Detailed renders the floating panel: a seven-field device block, a
// mobile-kit block driven by the 4-way display state, the mobile-kit
// control's enabled flag and tint, and the map pin for each source.
// Refreshes run on store notifications, not per frame.
type Detailed struct {
	store         *reading.Store
	surface       Surface
	primaryPins   *mappin.Synchronizer
	secondaryPins *mappin.Synchronizer

	// Injected environment capability; replaces the old ambient
	// is-this-the-simulator check.
	simulated bool
	enabled   bool
}

func NewDetailed(store *reading.Store, surface Surface, primaryPins, secondaryPins *mappin.Synchronizer, simulated, enabled bool) *Detailed {
	return &Detailed{
		store:         store,
		surface:       surface,
		primaryPins:   primaryPins,
		secondaryPins: secondaryPins,
		simulated:     simulated,
		enabled:       enabled,
	}
}

// RefreshPrimary re-renders the device block and its map pin.
func (d *Detailed) RefreshPrimary() {
	if d.surface == nil {
		warnNoSurface("detailed primary refresh")
		return
	}

	r := d.store.Primary()
	d.surface.SetText(FieldDetailedPrimary, FormatPrimary(r))
	d.primaryPins.Refresh(r.Latitude, r.Longitude, r.HasCoordinates())
}

// RefreshSecondary recomputes the mobile-kit display state and applies the
// full 4-way mapping: message text, control enabled flag, tint, and pin
// presence. Evaluated fresh on every call.
func (d *Detailed) RefreshSecondary() {
	if d.surface == nil {
		warnNoSurface("detailed secondary refresh")
		return
	}

	r := d.store.Secondary()
	state := ClassifySecondary(d.simulated, d.enabled, r)

	switch state {
	case StateUnavailable:
		d.surface.SetText(FieldDetailedSecondary, MsgUnavailable)
		d.surface.SetControlEnabled(false)
		d.surface.SetControlTint(TintGray)
	case StateAvailable:
		d.surface.SetText(FieldDetailedSecondary, MsgAvailable)
		d.surface.SetControlEnabled(false)
		d.surface.SetControlTint(TintWhite)
	case StateNoData:
		d.surface.SetText(FieldDetailedSecondary, MsgNoData)
		d.surface.SetControlEnabled(false)
		d.surface.SetControlTint(TintYellow)
	case StateActive:
		d.surface.SetText(FieldDetailedSecondary, FormatSecondary(r))
		d.surface.SetControlEnabled(true)
		d.surface.SetControlTint(TintGreen)
	}

	d.secondaryPins.Refresh(r.Latitude, r.Longitude, state == StateActive)
}

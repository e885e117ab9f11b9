package panel

import "github.com/siekermantechnology/SnapOSLocationTools/internal/reading"

// DisplayState classifies the mobile-kit feed for the floating panel. It is
// recomputed from scratch on every refresh, never maintained incrementally.
type DisplayState int

const (
	// StateUnavailable: running in the simulator, no phone bridge exists.
	StateUnavailable DisplayState = iota
	// StateAvailable: bridge exists but the phone feed is switched off.
	StateAvailable
	// StateNoData: feed is on but no reading has arrived yet. Coordinates at
	// exactly (0,0) are the sentinel, so a legitimate fix at the origin reads
	// as no data.
	StateNoData
	// StateActive: feed is on and has delivered coordinates.
	StateActive
)

func (d DisplayState) String() string {
	switch d {
	case StateUnavailable:
		return "unavailable"
	case StateAvailable:
		return "available"
	case StateNoData:
		return "no-data"
	case StateActive:
		return "active"
	default:
		return "invalid"
	}
}

// ClassifySecondary derives the display state from the environment flag, the
// feed toggle, and the current secondary reading.
func ClassifySecondary(simulated, enabled bool, r reading.Reading) DisplayState {
	switch {
	case simulated:
		return StateUnavailable
	case !enabled:
		return StateAvailable
	case !r.HasCoordinates():
		return StateNoData
	default:
		return StateActive
	}
}

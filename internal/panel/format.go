package panel

import (
	"fmt"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// FormatCompact renders the single status line on the hand panel.
func FormatCompact(r reading.Reading) string {
	return fmt.Sprintf("%s  ±%.1fm  %.0f°", r.Source.ShortLabel(), r.HorizontalAccuracy, r.Heading)
}

// FormatPrimary renders all seven device fields as the floating panel's
// multi-line body.
func FormatPrimary(r reading.Reading) string {
	return fmt.Sprintf(
		"Source: %s\n"+
			"Latitude: %.6f\n"+
			"Longitude: %.6f\n"+
			"Horizontal accuracy: %.2f m\n"+
			"Altitude: %.2f m\n"+
			"Vertical accuracy: %.2f m\n"+
			"Heading: %.1f°",
		r.Source.ShortLabel(),
		r.Latitude,
		r.Longitude,
		r.HorizontalAccuracy,
		r.Altitude,
		r.VerticalAccuracy,
		r.Heading,
	)
}

// FormatSecondary renders the five phone-relayed fields.
func FormatSecondary(r reading.Reading) string {
	return fmt.Sprintf(
		"Latitude: %.6f\n"+
			"Longitude: %.6f\n"+
			"Horizontal accuracy: %.2f m\n"+
			"Altitude: %.2f m\n"+
			"Vertical accuracy: %.2f m",
		r.Latitude,
		r.Longitude,
		r.HorizontalAccuracy,
		r.Altitude,
		r.VerticalAccuracy,
	)
}

// Package geosource adapts the device geolocation feed: a periodic position
// pull plus a push-based compass heading, both landing in the shared store.
package geosource

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// PositionProvider is one blocking "current position" call against the
// device location service.
type PositionProvider interface {
	CurrentPosition() (reading.Fix, error)
}

// HeadingSource pushes compass headings in degrees. Subscribe before the
// source starts delivering.
type HeadingSource interface {
	Subscribe(fn func(headingDeg float64))
}

// Adapter polls the position provider on a fixed cadence and relays compass
// headings into the store.
type Adapter struct {
	provider PositionProvider
	store    *reading.Store
	interval time.Duration

	// Injected environment capability: the simulator reports orientation
	// mirrored about forward, so headings flip sign there.
	simulated bool
}

func New(provider PositionProvider, store *reading.Store, interval time.Duration, simulated bool) *Adapter {
	return &Adapter{
		provider:  provider,
		store:     store,
		interval:  interval,
		simulated: simulated,
	}
}

// Run polls until ctx is cancelled. The next pull is scheduled one interval
// after the previous call resolves, so pulls never overlap and the
// effective cadence drifts under provider latency. A failed pull logs and
// leaves the previous reading untouched; the reschedule is unconditional.
func (a *Adapter) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		fix, err := a.provider.CurrentPosition()
		if err != nil {
			log.Warnf("geosource: position fetch failed: %v", err)
		} else {
			a.store.SetPrimaryFix(fix)
		}

		timer.Reset(a.interval)
	}
}

// HandleHeading applies one compass update to the store.
func (a *Adapter) HandleHeading(headingDeg float64) {
	if a.simulated {
		headingDeg = -headingDeg
	}
	a.store.SetPrimaryHeading(headingDeg)
}

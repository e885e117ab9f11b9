package geosource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

type scriptedProvider struct {
	calls   atomic.Int64
	results []func() (reading.Fix, error)
}

func (p *scriptedProvider) CurrentPosition() (reading.Fix, error) {
	n := int(p.calls.Add(1)) - 1
	if n >= len(p.results) {
		n = len(p.results) - 1
	}
	return p.results[n]()
}

func okFix(f reading.Fix) func() (reading.Fix, error) {
	return func() (reading.Fix, error) { return f, nil }
}

func errFix(err error) func() (reading.Fix, error) {
	return func() (reading.Fix, error) { return reading.Fix{}, err }
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRunAppliesFixAndKeepsPollingAfterFailure(t *testing.T) {
	store := reading.NewStore()
	provider := &scriptedProvider{results: []func() (reading.Fix, error){
		okFix(reading.Fix{Source: reading.SourceGNSS, Latitude: 52.2, Longitude: 5.1}),
		errFix(errors.New("service busy")),
		okFix(reading.Fix{Source: reading.SourceGNSS, Latitude: 52.3, Longitude: 5.2}),
	}}

	a := New(provider, store, time.Millisecond, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Run(ctx)

	// A failed pull leaves the previous reading and reschedules regardless.
	waitFor(t, func() bool { return provider.calls.Load() >= 3 })
	waitFor(t, func() bool { return store.Primary().Latitude == 52.3 })
}

func TestRunFailureLeavesPreviousReading(t *testing.T) {
	store := reading.NewStore()
	provider := &scriptedProvider{results: []func() (reading.Fix, error){
		okFix(reading.Fix{Source: reading.SourceWiFi, Latitude: 10, Longitude: 20}),
		errFix(errors.New("no position")),
	}}

	a := New(provider, store, time.Millisecond, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Run(ctx)

	waitFor(t, func() bool { return provider.calls.Load() >= 2 })

	r := store.Primary()
	if r.Latitude != 10 || r.Longitude != 20 || r.Source != reading.SourceWiFi {
		t.Fatalf("previous reading disturbed by failed fetch: %+v", r)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	store := reading.NewStore()
	provider := &scriptedProvider{results: []func() (reading.Fix, error){
		okFix(reading.Fix{Source: reading.SourceGNSS}),
	}}

	a := New(provider, store, time.Hour, false)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return provider.calls.Load() >= 1 })
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHandleHeading(t *testing.T) {
	store := reading.NewStore()

	a := New(nil, store, time.Second, false)
	a.HandleHeading(45)
	if got := store.Primary().Heading; got != 45 {
		t.Fatalf("heading: got %v want 45", got)
	}

	// Simulator orientation is mirrored, so the sign flips there.
	sim := New(nil, store, time.Second, true)
	sim.HandleHeading(45)
	if got := store.Primary().Heading; got != -45 {
		t.Fatalf("simulated heading: got %v want -45", got)
	}
}

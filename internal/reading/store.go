package reading

import "sync"

// Store owns the primary (device) and secondary (phone) readings and fires
// a "data available" notification after every mutation. Mutations arrive
// from the GPS reader and MQTT callback goroutines, hence the lock; all
// fields of an incoming report are applied before any consumer is notified.
type Store struct {
	mu          sync.RWMutex
	primary     Reading
	secondary   Reading
	onPrimary   []func()
	onSecondary []func()
}

func NewStore() *Store {
	return &Store{}
}

// OnPrimary registers a callback fired after every primary mutation.
// Registration is not synchronized with delivery: register before the
// adapters start.
func (s *Store) OnPrimary(fn func()) {
	s.onPrimary = append(s.onPrimary, fn)
}

// OnSecondary registers a callback fired after every secondary mutation.
func (s *Store) OnSecondary(fn func()) {
	s.onSecondary = append(s.onSecondary, fn)
}

// Primary returns a copy of the current primary reading.
func (s *Store) Primary() Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primary
}

// Secondary returns a copy of the current secondary reading.
func (s *Store) Secondary() Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secondary
}

// SetPrimaryFix replaces every primary field except the heading, which is
// owned by the compass push channel.
func (s *Store) SetPrimaryFix(f Fix) {
	s.mu.Lock()
	heading := s.primary.Heading
	s.primary = Reading{
		Source:             f.Source,
		Latitude:           f.Latitude,
		Longitude:          f.Longitude,
		HorizontalAccuracy: f.HorizontalAccuracy,
		Altitude:           f.Altitude,
		VerticalAccuracy:   f.VerticalAccuracy,
		Heading:            heading,
	}
	s.mu.Unlock()
	s.notify(s.onPrimary)
}

// SetPrimaryHeading updates only the compass heading of the primary reading.
func (s *Store) SetPrimaryHeading(headingDeg float64) {
	s.mu.Lock()
	s.primary.Heading = headingDeg
	s.mu.Unlock()
	s.notify(s.onPrimary)
}

// ApplySecondary applies a sparse phone update to the secondary reading.
// An empty update still notifies: even a payload with no known fields counts
// as a refresh trigger.
func (s *Store) ApplySecondary(u Update) {
	s.mu.Lock()
	s.secondary.Apply(u)
	s.mu.Unlock()
	s.notify(s.onSecondary)
}

func (s *Store) notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

package selection

// Single holds at most one active key. Selecting the active key clears it.
type Single[K comparable] struct {
	key    K
	active bool
}

// Toggle activates key, or clears the selection if key is already active
func (s Single[K]) Toggle(key K) Single[K] {
	if s.active && s.key == key {
		return Single[K]{}
	}
	return Single[K]{key: key, active: true}
}

// Clear drops the selection
func (s Single[K]) Clear() Single[K] {
	return Single[K]{}
}

// Active returns the selected key
func (s Single[K]) Active() (K, bool) {
	return s.key, s.active
}

// Is reports whether key is the active one
func (s Single[K]) Is(key K) bool {
	return s.active && s.key == key
}

// Prune drops the active key unless filterable still lists it
func (s Single[K]) Prune(filterable []K) Single[K] {
	if !s.active || contains(filterable, s.key) {
		return s
	}
	return Single[K]{}
}

// Package selection holds the filter state machines behind the type and
// year pickers and the single-select fact/metric toggles. Every transition
// returns a new value; a State is never mutated after construction.
package selection

import "strings"

// State is either AllMode (every current and future key) or an explicit
// subset of the domain.
type State[K comparable] struct {
	all      bool
	selected map[K]struct{}
}

// NewAll returns the AllMode state
func NewAll[K comparable]() State[K] {
	return State[K]{all: true}
}

// Explicit returns an explicit subset holding keys
func Explicit[K comparable](keys ...K) State[K] {
	s := State[K]{selected: make(map[K]struct{}, len(keys))}
	for _, k := range keys {
		s.selected[k] = struct{}{}
	}
	return s
}

// All reports whether s is in AllMode
func (s State[K]) All() bool {
	return s.all
}

// Has reports whether key is explicitly selected. AllMode selects nothing
// explicitly.
func (s State[K]) Has(key K) bool {
	if s.all {
		return false
	}
	_, ok := s.selected[key]
	return ok
}

// Len is the size of the explicit subset
func (s State[K]) Len() int {
	if s.all {
		return 0
	}
	return len(s.selected)
}

// Empty reports an explicit subset with nothing in it
func (s State[K]) Empty() bool {
	return !s.all && len(s.selected) == 0
}

// Equal compares two states
func (s State[K]) Equal(other State[K]) bool {
	if s.all || other.all {
		return s.all == other.all
	}
	if len(s.selected) != len(other.selected) {
		return false
	}
	for k := range s.selected {
		if _, ok := other.selected[k]; !ok {
			return false
		}
	}
	return true
}

func (s State[K]) with(key K) State[K] {
	next := Explicit[K]()
	for k := range s.selected {
		next.selected[k] = struct{}{}
	}
	next.selected[key] = struct{}{}
	return next
}

func (s State[K]) without(key K) State[K] {
	next := Explicit[K]()
	for k := range s.selected {
		if k != key {
			next.selected[k] = struct{}{}
		}
	}
	return next
}

func contains[K comparable](domain []K, key K) bool {
	for _, k := range domain {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle applies a single click on a filter button. Leaving AllMode through
// a concrete key starts a fresh singleton set. Emptying the set or filling
// the whole domain collapses back to AllMode. Keys outside domain are
// ignored.
func Toggle[K comparable](s State[K], key K, domain []K) State[K] {
	if !contains(domain, key) {
		return s
	}
	if s.all {
		return Canonicalize(Explicit(key), domain, false)
	}
	if s.Has(key) {
		return Canonicalize(s.without(key), domain, false)
	}
	return Canonicalize(s.with(key), domain, false)
}

// ToggleAll applies a click on the "all" button
func ToggleAll[K comparable](State[K]) State[K] {
	return NewAll[K]()
}

// Canonicalize drops keys that left the domain, then collapses an explicit
// subset covering the whole domain to AllMode. An empty subset collapses
// too unless allowEmpty is set.
func Canonicalize[K comparable](s State[K], domain []K, allowEmpty bool) State[K] {
	if s.all {
		return s
	}

	pruned := Explicit[K]()
	for _, k := range domain {
		if _, ok := s.selected[k]; ok {
			pruned.selected[k] = struct{}{}
		}
	}

	if len(pruned.selected) == 0 {
		if allowEmpty {
			return pruned
		}
		return NewAll[K]()
	}
	if len(pruned.selected) == len(domain) {
		return NewAll[K]()
	}
	return pruned
}

// Resolve lists the selected keys in domain order
func Resolve[K comparable](s State[K], domain []K) []K {
	out := make([]K, 0, len(domain))
	for _, k := range domain {
		if s.all || s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Labels used by the filter menus
const (
	AllActivitiesLabel      = "All Activities"
	NoActivitiesLabel       = "No Activities Selected"
	MultipleActivitiesLabel = "Multiple Activities Selected"
	AllYearsLabel           = "All Years"
	NoYearsLabel            = "No Years Selected"
	MultipleYearsLabel      = "Multiple Years Selected"
)

// MenuText is the label of a filter menu button. Short is shown instead of
// Full when space is tight; it is empty when Full is already short.
type MenuText struct {
	Full  string
	Short string
}

// MenuLabel renders the menu button text for the resolved keys
func MenuLabel[K comparable](s State[K], resolved []K, label func(K) string, allText, noneText, multipleText string) MenuText {
	if s.all {
		return MenuText{Full: allText}
	}
	if len(resolved) == 0 {
		return MenuText{Full: noneText}
	}

	labels := make([]string, len(resolved))
	for i, k := range resolved {
		labels[i] = label(k)
	}
	text := MenuText{Full: strings.Join(labels, ", ")}
	if len(resolved) > 1 {
		text.Short = multipleText
	}
	return text
}

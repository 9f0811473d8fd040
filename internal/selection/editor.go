package selection

// Editor is the draft buffer of an open filter menu. Clicks mutate only the
// draft; Commit finalizes it and Discard keeps the canonical state.
type Editor[K comparable] struct {
	canonical  State[K]
	draft      State[K]
	domain     []K
	allowEmpty bool
}

// Begin opens a menu over domain. allowEmpty controls whether committing
// an empty draft yields "nothing selected" or falls back to AllMode.
func Begin[K comparable](canonical State[K], domain []K, allowEmpty bool) Editor[K] {
	d := make([]K, len(domain))
	copy(d, domain)
	return Editor[K]{
		canonical:  canonical,
		draft:      canonical,
		domain:     d,
		allowEmpty: allowEmpty,
	}
}

// Apply toggles key in the draft. From AllMode the draft becomes the domain
// minus key; otherwise key is added or removed in place and the draft may
// become empty.
func (e Editor[K]) Apply(key K) Editor[K] {
	if !contains(e.domain, key) {
		return e
	}

	switch {
	case e.draft.all:
		next := Explicit[K]()
		for _, k := range e.domain {
			if k != key {
				next.selected[k] = struct{}{}
			}
		}
		e.draft = next
	case e.draft.Has(key):
		e.draft = e.draft.without(key)
	default:
		e.draft = e.draft.with(key)
	}
	return e
}

// ApplyAll flips the draft between AllMode and an explicit copy of the
// whole domain, so later clicks deselect against a concrete set.
func (e Editor[K]) ApplyAll() Editor[K] {
	if e.draft.all {
		e.draft = Explicit(e.domain...)
		return e
	}
	e.draft = NewAll[K]()
	return e
}

// Draft is the state the open menu renders its checkmarks from
func (e Editor[K]) Draft() State[K] {
	return e.draft
}

// Domain returns the keys the menu offers
func (e Editor[K]) Domain() []K {
	return e.domain
}

// Commit finalizes the draft into a canonical state
func (e Editor[K]) Commit() State[K] {
	return Canonicalize(e.draft, e.domain, e.allowEmpty)
}

// Discard abandons the draft
func (e Editor[K]) Discard() State[K] {
	return e.canonical
}

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var types = []string{"Run", "Ride", "Swim"}

func TestToggleRoundTrip(t *testing.T) {
	for n := 1; n <= len(types); n++ {
		domain := types[:n]
		s := NewAll[string]()
		for i, k := range domain {
			s = Toggle(s, k, domain)
			if i < n-1 {
				assert.False(t, s.All(), "domain %v: all mode after %d toggles", domain, i+1)
			}
		}
		assert.True(t, s.All(), "domain %v: expected all mode after %d toggles", domain, n)
	}
}

func TestToggleAllThenKeyStartsFresh(t *testing.T) {
	s := Explicit("Run")
	s = ToggleAll(s)
	require.True(t, s.All())

	s = Toggle(s, "Ride", types)
	assert.False(t, s.All())
	assert.Equal(t, []string{"Ride"}, Resolve(s, types))
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name    string
		start   State[string]
		key     string
		wantAll bool
		want    []string
	}{
		{"from all", NewAll[string](), "Swim", false, []string{"Swim"}},
		{"add", Explicit("Run"), "Swim", false, []string{"Run", "Swim"}},
		{"remove", Explicit("Run", "Swim"), "Run", false, []string{"Swim"}},
		{"remove last", Explicit("Run"), "Run", true, types},
		{"fill domain", Explicit("Run", "Ride"), "Swim", true, types},
		{"unknown key", Explicit("Run"), "Hike", false, []string{"Run"}},
		{"add to empty", Explicit[string](), "Ride", false, []string{"Ride"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toggle(tt.start, tt.key, types)
			assert.Equal(t, tt.wantAll, got.All())
			assert.Equal(t, tt.want, Resolve(got, types))
		})
	}
}

func TestToggleDoesNotMutate(t *testing.T) {
	start := Explicit("Run")
	_ = Toggle(start, "Ride", types)
	assert.Equal(t, 1, start.Len())
	assert.True(t, start.Has("Run"))
	assert.False(t, start.Has("Ride"))
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name       string
		start      State[string]
		allowEmpty bool
		wantAll    bool
		want       []string
	}{
		{"full explicit", Explicit("Run", "Ride", "Swim"), false, true, types},
		{"empty types kept", Explicit[string](), true, false, []string{}},
		{"empty years collapse", Explicit[string](), false, true, types},
		{"stale key pruned", Explicit("Run", "Hike"), false, false, []string{"Run"}},
		{"only stale keys", Explicit("Hike"), false, true, types},
		{"all stays all", NewAll[string](), false, true, types},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(tt.start, types, tt.allowEmpty)
			assert.Equal(t, tt.wantAll, got.All())
			assert.Equal(t, tt.want, Resolve(got, types))
		})
	}
}

func TestEditorTransitions(t *testing.T) {
	tests := []struct {
		name    string
		start   State[string]
		clicks  []string
		wantAll bool
		want    []string
	}{
		{"all then all", NewAll[string](), []string{"all"}, false, types},
		{"explicit then all", Explicit("Run"), []string{"all"}, true, types},
		{"all then key", NewAll[string](), []string{"Ride"}, false, []string{"Run", "Swim"}},
		{"explicit add", Explicit("Run"), []string{"Swim"}, false, []string{"Run", "Swim"}},
		{"explicit remove to empty", Explicit("Run"), []string{"Run"}, false, []string{}},
		{"draft may cover domain", Explicit("Run", "Ride"), []string{"Swim"}, false, types},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Begin(tt.start, types, true)
			for _, c := range tt.clicks {
				if c == "all" {
					e = e.ApplyAll()
				} else {
					e = e.Apply(c)
				}
			}
			draft := e.Draft()
			assert.Equal(t, tt.wantAll, draft.All())
			assert.Equal(t, tt.want, Resolve(draft, types))
		})
	}
}

func TestEditorCommit(t *testing.T) {
	// types keep an empty commit as "nothing selected"
	typesEditor := Begin(Explicit("Run"), types, true).Apply("Run")
	committed := typesEditor.Commit()
	assert.False(t, committed.All())
	assert.True(t, committed.Empty())

	// years fall back to all
	years := []int{2024, 2023}
	yearsEditor := Begin(Explicit(2024), years, false).Apply(2024)
	assert.True(t, yearsEditor.Commit().All())

	// deselecting everything one by one then reselecting collapses on commit
	e := Begin(NewAll[string](), types, true).Apply("Run").Apply("Run")
	assert.True(t, e.Commit().All())
}

func TestEditorDiscard(t *testing.T) {
	canonical := Explicit("Ride")
	e := Begin(canonical, types, true).Apply("Run").Apply("Ride").ApplyAll()

	got := e.Discard()
	assert.True(t, got.Equal(canonical))
	assert.Equal(t, []string{"Ride"}, Resolve(got, types))
}

func TestEditorIgnoresUnknownKey(t *testing.T) {
	e := Begin(NewAll[string](), types, true).Apply("Hike")
	assert.True(t, e.Draft().All())
}

func TestSingle(t *testing.T) {
	var s Single[string]
	_, ok := s.Active()
	assert.False(t, ok)

	s = s.Toggle("peak-hour")
	key, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "peak-hour", key)

	s = s.Toggle("most-active-day")
	assert.True(t, s.Is("most-active-day"))

	s = s.Toggle("most-active-day")
	_, ok = s.Active()
	assert.False(t, ok, "toggling the active key clears it")

	s = s.Toggle("peak-hour").Prune([]string{"most-active-day"})
	_, ok = s.Active()
	assert.False(t, ok, "unfilterable key is pruned")

	s = s.Toggle("peak-hour").Prune([]string{"peak-hour"})
	assert.True(t, s.Is("peak-hour"))
}

func TestMenuLabel(t *testing.T) {
	label := func(s string) string { return s }

	tests := []struct {
		name     string
		state    State[string]
		resolved []string
		want     MenuText
	}{
		{"all", NewAll[string](), types, MenuText{Full: AllActivitiesLabel}},
		{"none", Explicit[string](), nil, MenuText{Full: NoActivitiesLabel}},
		{"one", Explicit("Run"), []string{"Run"}, MenuText{Full: "Run"}},
		{"two", Explicit("Run", "Ride"), []string{"Run", "Ride"}, MenuText{Full: "Run, Ride", Short: MultipleActivitiesLabel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MenuLabel(tt.state, tt.resolved, label, AllActivitiesLabel, NoActivitiesLabel, MultipleActivitiesLabel)
			assert.Equal(t, tt.want, got)
		})
	}
}

package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/selection"
	"strava-heatmaps/internal/units"
)

// Menu identifies the open filter menu
type Menu int

const (
	MenuNone Menu = iota
	MenuTypes
	MenuYears
)

func (m Menu) String() string {
	switch m {
	case MenuTypes:
		return "types"
	case MenuYears:
		return "years"
	}
	return "none"
}

// Session owns the loaded payload and every piece of selection state. All
// operations run synchronously on the caller's goroutine; it is not safe
// for concurrent use.
type Session struct {
	payload      *payload.Payload
	palette      *palette.Palette
	units        units.Units
	visibleYears aggregate.VisibleYears

	types selection.State[string]
	years selection.State[int]

	menu       Menu
	typeEditor selection.Editor[string]
	yearEditor selection.Editor[int]

	fact        selection.Single[string]
	metric      selection.Single[aggregate.Metric]
	yearMetrics map[string]selection.Single[aggregate.Metric]

	// visible is the year domain as of the last reconcile
	visible []int
}

// Option configures a Session
type Option func(*Session)

// WithVisibleYears replaces the default AllYearsDescending policy
func WithVisibleYears(policy aggregate.VisibleYears) Option {
	return func(s *Session) {
		if policy != nil {
			s.visibleYears = policy
		}
	}
}

// WithPaletteOptions forwards options to the palette built from the payload
func WithPaletteOptions(opts ...palette.Option) Option {
	return func(s *Session) {
		s.palette = palette.New(s.payload, opts...)
	}
}

// NewSession starts a session with every type and year selected
func NewSession(p *payload.Payload, opts ...Option) *Session {
	s := &Session{
		payload:      p,
		palette:      palette.New(p),
		units:        units.New(p.Units),
		visibleYears: aggregate.AllYearsDescending,
		types:        selection.NewAll[string](),
		years:        selection.NewAll[int](),
		yearMetrics:  make(map[string]selection.Single[aggregate.Metric]),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reconcile()
	return s
}

// Palette returns the session's color and label resolver
func (s *Session) Palette() *palette.Palette {
	return s.palette
}

// Units returns the session's unit formatter
func (s *Session) Units() units.Units {
	return s.units
}

// Payload returns the loaded payload
func (s *Session) Payload() *payload.Payload {
	return s.payload
}

// OpenMenu returns the menu currently open
func (s *Session) OpenMenu() Menu {
	return s.menu
}

// ToggleType applies a click on a type button. AllKey selects every type.
// Clicks outside an open menu discard its draft first.
func (s *Session) ToggleType(t string) {
	s.MenuDiscard()
	if t == AllKey {
		s.types = selection.ToggleAll(s.types)
	} else {
		s.types = selection.Toggle(s.types, t, s.payload.Types)
	}
	log.WithField("type", t).Debug("toggle type")
	s.reconcile()
}

// SelectTypeCard applies a click on a summary type card
func (s *Session) SelectTypeCard(t string) {
	s.ToggleType(t)
}

// ToggleYear applies a click on a year button
func (s *Session) ToggleYear(year int) {
	s.MenuDiscard()
	s.years = selection.Toggle(s.years, year, s.visible)
	log.WithField("year", year).Debug("toggle year")
	s.reconcile()
}

// ToggleAllYears applies a click on the "All Years" button
func (s *Session) ToggleAllYears() {
	s.MenuDiscard()
	s.years = selection.ToggleAll(s.years)
	log.Debug("toggle all years")
	s.reconcile()
}

// ClearTypes resets the type filter to every type
func (s *Session) ClearTypes() {
	s.MenuDiscard()
	if s.types.All() {
		return
	}
	s.types = selection.NewAll[string]()
	s.reconcile()
}

// ClearYears resets the year filter to every year
func (s *Session) ClearYears() {
	s.MenuDiscard()
	if s.years.All() {
		return
	}
	s.years = selection.NewAll[int]()
	s.reconcile()
}

// OpenTypeMenu starts a draft edit of the type filter. Any other open menu
// is discarded. Opening the open menu again closes it.
func (s *Session) OpenTypeMenu() {
	if s.menu == MenuTypes {
		s.MenuDiscard()
		return
	}
	s.MenuDiscard()
	s.typeEditor = selection.Begin(s.types, s.payload.Types, true)
	s.menu = MenuTypes
	log.Debug("type menu opened")
}

// OpenYearMenu starts a draft edit of the year filter
func (s *Session) OpenYearMenu() {
	if s.menu == MenuYears {
		s.MenuDiscard()
		return
	}
	s.MenuDiscard()
	s.yearEditor = selection.Begin(s.years, s.visible, false)
	s.menu = MenuYears
	log.Debug("year menu opened")
}

// MenuToggleAll applies a click on the "all" entry of the open menu
func (s *Session) MenuToggleAll() {
	switch s.menu {
	case MenuTypes:
		s.typeEditor = s.typeEditor.ApplyAll()
	case MenuYears:
		s.yearEditor = s.yearEditor.ApplyAll()
	}
}

// MenuToggleType applies a click on a type entry of the open type menu
func (s *Session) MenuToggleType(t string) {
	if s.menu != MenuTypes {
		return
	}
	s.typeEditor = s.typeEditor.Apply(t)
}

// MenuToggleYear applies a click on a year entry of the open year menu
func (s *Session) MenuToggleYear(year int) {
	if s.menu != MenuYears {
		return
	}
	s.yearEditor = s.yearEditor.Apply(year)
}

// MenuDone commits the open menu's draft
func (s *Session) MenuDone() {
	switch s.menu {
	case MenuTypes:
		s.types = s.typeEditor.Commit()
	case MenuYears:
		s.years = s.yearEditor.Commit()
	default:
		return
	}
	log.WithField("menu", s.menu.String()).Debug("menu committed")
	s.menu = MenuNone
	s.reconcile()
}

// MenuDiscard closes the open menu without applying its draft
func (s *Session) MenuDiscard() {
	switch s.menu {
	case MenuTypes:
		s.types = s.typeEditor.Discard()
	case MenuYears:
		s.years = s.yearEditor.Discard()
	default:
		return
	}
	s.menu = MenuNone
}

// ToggleFact selects or clears a fact of the frequency card. Facts that
// can't filter the current selection are ignored.
func (s *Session) ToggleFact(key string) {
	s.MenuDiscard()
	if f, ok := aggregate.FindFact(aggregate.Facts(s.baseFrequency()), key); !ok || !f.Filterable {
		return
	}
	s.fact = s.fact.Toggle(key)
	log.WithField("fact", key).Debug("toggle fact")
}

// ToggleMetric selects or clears the metric weighting the frequency card
func (s *Session) ToggleMetric(m aggregate.Metric) {
	s.MenuDiscard()
	items := aggregate.MetricItems(s.records(), s.units)
	if !contains(aggregate.FilterableMetrics(items), m) {
		return
	}
	s.metric = s.metric.Toggle(m)
	log.WithField("metric", m).Debug("toggle metric")
}

// ToggleYearMetric selects or clears the metric coloring one year card
func (s *Session) ToggleYearMetric(cardType string, year int, m aggregate.Metric) {
	s.MenuDiscard()
	key := yearCardKey(cardType, year)
	if !contains(s.yearCards(), cardRef{cardType: cardType, year: year}) {
		return
	}
	if !contains(s.yearCardMetrics(cardType, year), m) {
		return
	}
	s.yearMetrics[key] = s.yearMetrics[key].Toggle(m)
	log.WithFields(log.Fields{"card": key, "metric": m}).Debug("toggle year metric")
}

// Types returns the resolved type selection in payload order
func (s *Session) Types() []string {
	return selection.Resolve(s.types, s.payload.Types)
}

// Years returns the resolved year selection, newest first
func (s *Session) Years() []int {
	return selection.Resolve(s.years, s.visible)
}

// reconcile brings every piece of state back to a valid value after the
// selection changed: stale years and unfilterable facts or metrics are
// dropped.
func (s *Session) reconcile() {
	s.types = selection.Canonicalize(s.types, s.payload.Types, true)
	s.visible = s.visibleYears(s.payload, s.Types(), s.payload.Years)
	s.years = selection.Canonicalize(s.years, s.visible, false)

	s.fact = s.fact.Prune(s.filterableFacts())
	items := aggregate.MetricItems(s.records(), s.units)
	s.metric = s.metric.Prune(aggregate.FilterableMetrics(items))

	live := make(map[string]bool)
	for _, c := range s.yearCards() {
		key := yearCardKey(c.cardType, c.year)
		live[key] = true
		if m, ok := s.yearMetrics[key]; ok {
			s.yearMetrics[key] = m.Prune(s.yearCardMetrics(c.cardType, c.year))
		}
	}
	for key := range s.yearMetrics {
		if !live[key] {
			delete(s.yearMetrics, key)
		}
	}
}

func (s *Session) records() []aggregate.Record {
	return aggregate.Prepare(s.payload, s.palette, s.Types(), s.Years())
}

func (s *Session) baseFrequency() aggregate.FrequencyData {
	return aggregate.BuildFrequencyData(s.records(), s.Years(), s.palette.IsOther, nil, "")
}

func (s *Session) filterableFacts() []string {
	return aggregate.FilterableKeys(aggregate.Facts(s.baseFrequency()))
}

type cardRef struct {
	cardType string
	year     int
}

// yearCards lists the year cards the current selection renders
func (s *Session) yearCards() []cardRef {
	types := s.Types()
	years := s.Years()

	var refs []cardRef
	if len(types) > 1 {
		for _, y := range years {
			refs = append(refs, cardRef{cardType: aggregate.CombinedType, year: y})
		}
		return refs
	}
	for _, t := range types {
		for _, y := range years {
			refs = append(refs, cardRef{cardType: t, year: y})
		}
	}
	return refs
}

// yearCardEntries returns the day entries behind one year card
func (s *Session) yearCardEntries(cardType string, year int) map[string]aggregate.CombinedEntry {
	yearData := s.payload.Aggregates[year]
	if cardType == aggregate.CombinedType {
		return aggregate.CombineYearAggregates(yearData, s.Types())
	}
	return aggregate.SingleTypeAggregates(yearData[cardType], cardType)
}

// yearCardMetrics lists the metrics with a non-zero total on a year card
func (s *Session) yearCardMetrics(cardType string, year int) []aggregate.Metric {
	var out []aggregate.Metric
	for _, m := range aggregate.Metrics {
		total := 0.0
		for _, e := range s.yearCardEntries(cardType, year) {
			total += entryMetric(e, m)
		}
		if total > 0 {
			out = append(out, m)
		}
	}
	return out
}

func entryMetric(e aggregate.CombinedEntry, m aggregate.Metric) float64 {
	return m.Value(payload.DayAggregate{
		Count:         e.Count,
		Distance:      e.Distance,
		MovingTime:    e.MovingTime,
		ElevationGain: e.ElevationGain,
	})
}

func yearCardKey(cardType string, year int) string {
	return fmt.Sprintf("%s/%d", cardType, year)
}

func contains[K comparable](list []K, key K) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}

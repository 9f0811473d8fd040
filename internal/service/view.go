package service

import (
	"strconv"
	"strings"
	"time"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/calendar"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/selection"
	"strava-heatmaps/internal/summary"
	"strava-heatmaps/internal/units"
)

// View is everything one render cycle needs
type View struct {
	Updated string

	// Resolved filters
	Types        []string
	Years        []int
	VisibleYears []int

	TypeFilter FilterView
	YearFilter FilterView

	// Menu is the open filter menu, nil when closed
	Menu *MenuView

	Sections []Section
	Summary  SummaryView
	Snapshot Snapshot
}

// FilterOption is a filter button or menu entry
type FilterOption struct {
	Value  string
	Label  string
	Active bool
}

// FilterView describes one filter dimension
type FilterView struct {
	Label         selection.MenuText
	Options       []FilterOption
	ClearDisabled bool
}

// MenuView is the open menu rendered from its draft
type MenuView struct {
	Kind    Menu
	Options []FilterOption
}

// Section groups the cards of one type, or of several combined types
type Section struct {
	Title     string
	Type      string
	Accent    string
	Frequency FrequencyCard
	Years     []YearCard
}

// FrequencyCard is the overview card with day/month/hour matrices
type FrequencyCard struct {
	Title string

	// Empty replaces the matrices with EmptyMessage
	Empty        bool
	EmptyMessage string

	Color  string
	Day    MatrixView
	Month  MatrixView
	Hour   MatrixView
	Weekly []float64

	// HourFallback is set when there is no time-of-day data
	HourFallback string

	Facts   []FactView
	Metrics []MetricView
}

// MatrixView is a rendered frequency matrix
type MatrixView struct {
	Title   string
	Rows    []int
	Columns []string
	Cells   [][]MatrixCell
}

// MatrixCell is one year x bucket cell
type MatrixCell struct {
	Value   float64
	Color   string
	Tooltip string
}

// FactView is a fact button
type FactView struct {
	Key        string
	Label      string
	Value      string
	Filterable bool
	Active     bool
}

// MetricView is a metric button
type MetricView struct {
	Metric     aggregate.Metric
	Label      string
	Value      string
	Filterable bool
	Active     bool
}

// YearCard is one year's calendar heatmap
type YearCard struct {
	Type string
	Year int

	Empty        bool
	EmptyMessage string

	Grid    calendar.Grid
	Cells   []DayCell
	Stats   []summary.Card
	Metrics []MetricView
}

// DayCell is one calendar cell
type DayCell struct {
	calendar.Cell
	Count      int
	Color      string
	Background palette.Background
	Tooltip    string
}

// SummaryView is the headline stats row
type SummaryView struct {
	Cards     []summary.Card
	TypeCards []summary.TypeCard
	Streaks   summary.Streaks
}

// Snapshot is the selection state behind a view
type Snapshot struct {
	AllTypes bool
	Types    []string
	AllYears bool
	Years    []int
	Fact     string
	Metric   aggregate.Metric
	Menu     Menu
}

// View renders the current state
func (s *Session) View() View {
	types := s.Types()
	years := s.Years()
	allTypes := s.types.All()
	allYears := s.years.All()

	v := View{
		Updated:      s.updated(),
		Types:        types,
		Years:        years,
		VisibleYears: append([]int(nil), s.visible...),
		TypeFilter:   s.typeFilter(types),
		YearFilter:   s.yearFilter(years),
		Menu:         s.menuView(),
		Snapshot: Snapshot{
			AllTypes: allTypes,
			Types:    types,
			AllYears: allYears,
			Years:    years,
			Menu:     s.menu,
		},
	}
	if key, ok := s.fact.Active(); ok {
		v.Snapshot.Fact = key
	}
	if m, ok := s.metric.Active(); ok {
		v.Snapshot.Metric = m
	}

	if len(types) > 1 {
		title := s.palette.ActivitiesTitle(types)
		if len(types) == len(s.payload.Types) {
			title = selection.AllActivitiesLabel
		}
		v.Sections = []Section{s.section(title, aggregate.CombinedType, types, years)}
	} else {
		for _, t := range types {
			v.Sections = append(v.Sections, s.section(s.palette.ActivitiesTitle([]string{t}), t, []string{t}, years))
		}
	}

	totals := summary.BuildTotals(s.payload, types, years, s.payload.Types)
	v.Summary = SummaryView{
		Cards: summary.Cards(totals, s.units, true),
		TypeCards: summary.TypeCards(s.palette, totals, s.payload.Types, func(t string) bool {
			return !allTypes && contains(types, t)
		}),
		Streaks: summary.CalculateStreaks(totals.ActiveDates),
	}
	return v
}

func (s *Session) updated() string {
	if s.payload.GeneratedAt == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, s.payload.GeneratedAt)
	if err != nil {
		return ""
	}
	return "Last updated: " + ts.Local().Format(UpdatedLayout)
}

func (s *Session) typeFilter(types []string) FilterView {
	options := []FilterOption{{Value: AllKey, Label: selection.AllActivitiesLabel, Active: s.types.All()}}
	for _, t := range s.payload.Types {
		options = append(options, FilterOption{Value: t, Label: s.palette.DisplayType(t), Active: s.types.Has(t)})
	}
	return FilterView{
		Label: selection.MenuLabel(s.types, types, s.palette.DisplayType,
			selection.AllActivitiesLabel, selection.NoActivitiesLabel, selection.MultipleActivitiesLabel),
		Options:       options,
		ClearDisabled: s.types.All(),
	}
}

func (s *Session) yearFilter(years []int) FilterView {
	options := []FilterOption{{Value: AllKey, Label: selection.AllYearsLabel, Active: s.years.All()}}
	for _, y := range s.visible {
		options = append(options, FilterOption{Value: strconv.Itoa(y), Label: strconv.Itoa(y), Active: s.years.Has(y)})
	}
	return FilterView{
		Label: selection.MenuLabel(s.years, years, strconv.Itoa,
			selection.AllYearsLabel, selection.NoYearsLabel, selection.MultipleYearsLabel),
		Options:       options,
		ClearDisabled: s.years.All(),
	}
}

func (s *Session) menuView() *MenuView {
	switch s.menu {
	case MenuTypes:
		draft := s.typeEditor.Draft()
		options := []FilterOption{{Value: AllKey, Label: selection.AllActivitiesLabel, Active: draft.All()}}
		for _, t := range s.typeEditor.Domain() {
			options = append(options, FilterOption{Value: t, Label: s.palette.DisplayType(t), Active: draft.Has(t)})
		}
		return &MenuView{Kind: MenuTypes, Options: options}
	case MenuYears:
		draft := s.yearEditor.Draft()
		options := []FilterOption{{Value: AllKey, Label: selection.AllYearsLabel, Active: draft.All()}}
		for _, y := range s.yearEditor.Domain() {
			options = append(options, FilterOption{Value: strconv.Itoa(y), Label: strconv.Itoa(y), Active: draft.Has(y)})
		}
		return &MenuView{Kind: MenuYears, Options: options}
	}
	return nil
}

func (s *Session) section(title, cardType string, types []string, years []int) Section {
	sec := Section{
		Title:     title,
		Type:      cardType,
		Accent:    s.palette.FrequencyColor(types, s.years.All()),
		Frequency: s.frequencyCard(types, years),
	}

	var totals map[int]int
	var typeLabels map[string][]string
	emptyLabel := ""
	if cardType == aggregate.CombinedType {
		totals = aggregate.TypesYearTotals(s.payload, types, years)
		typeLabels = aggregate.CombinedTypeLabelsByDate(s.payload, s.palette, types, years)
		emptyLabel = strings.Join(s.palette.DisplayTypes(types), " + ")
	} else {
		totals = aggregate.TypeYearTotals(s.payload, cardType, years)
		emptyLabel = s.palette.DisplayType(cardType)
	}

	for _, y := range years {
		if totals[y] <= 0 {
			sec.Years = append(sec.Years, YearCard{
				Type:         cardType,
				Year:         y,
				Empty:        true,
				EmptyMessage: palette.EmptyMessage(emptyLabel),
			})
			continue
		}
		sec.Years = append(sec.Years, s.yearCard(cardType, y, typeLabels))
	}
	return sec
}

func (s *Session) frequencyCard(types []string, years []int) FrequencyCard {
	card := FrequencyCard{Title: FrequencyCardTitle, Color: s.palette.FrequencyCardColor(types)}

	records := aggregate.Prepare(s.payload, s.palette, types, years)
	base := aggregate.BuildFrequencyData(records, years, s.palette.IsOther, nil, "")
	if base.Empty() {
		label := "activities"
		if len(types) > 0 {
			label = strings.Join(s.palette.DisplayTypes(types), " + ")
		}
		card.Empty = true
		card.EmptyMessage = palette.EmptyMessage(label)
		return card
	}

	facts := aggregate.Facts(base)
	var filter aggregate.Predicate
	for _, f := range facts {
		active := s.fact.Is(f.Key)
		if active {
			filter = f.Filter
		}
		card.Facts = append(card.Facts, FactView{
			Key:        f.Key,
			Label:      f.Label,
			Value:      f.Value,
			Filterable: f.Filterable,
			Active:     active,
		})
	}

	metric, _ := s.metric.Active()
	for _, item := range aggregate.MetricItems(records, s.units) {
		card.Metrics = append(card.Metrics, MetricView{
			Metric:     item.Metric,
			Label:      item.Label,
			Value:      item.Value,
			Filterable: item.Filterable,
			Active:     s.metric.Is(item.Metric),
		})
	}

	data := aggregate.BuildFrequencyData(records, years, s.palette.IsOther, filter, metric)
	tooltip := func(breakdowns aggregate.BreakdownMatrix, labels []string) func(row, col int, value float64) string {
		return func(row, col int, value float64) string {
			return aggregate.MatrixTooltip(s.palette, s.units, years[row], labels[col], value, breakdowns[row][col], types, metric)
		}
	}

	card.Day = matrixView(DayPanelTitle, years, DayAxisLabels, data.Day, card.Color,
		tooltip(data.DayBreakdowns, calendar.Days[:]))
	card.Month = matrixView(MonthPanelTitle, years, MonthAxisLabels, data.Month, card.Color,
		tooltip(data.MonthBreakdowns, calendar.Months[:]))

	if data.HourActivityCount > 0 {
		axis := make([]string, 24)
		full := make([]string, 24)
		for h := range axis {
			if h%3 == 0 {
				axis[h] = units.HourLabel(h)
			}
			full[h] = units.HourTooltipLabel(h)
		}
		card.Hour = matrixView(HourPanelTitle, years, axis, data.Hour, card.Color, tooltip(data.HourBreakdowns, full))
	} else {
		card.Hour = MatrixView{Title: HourPanelTitle}
		card.HourFallback = HourFallback
	}

	card.Weekly = append([]float64(nil), data.WeekTotals[1:]...)
	return card
}

func matrixView(title string, years []int, columns []string, m aggregate.Matrix, color string, tooltip func(row, col int, value float64) string) MatrixView {
	peak := m.Max()
	view := MatrixView{Title: title, Rows: years, Columns: columns, Cells: make([][]MatrixCell, len(m))}
	for row, values := range m {
		view.Cells[row] = make([]MatrixCell, len(values))
		for col, value := range values {
			cell := MatrixCell{Value: value, Color: palette.NeutralColor}
			if value > 0 {
				cell.Color = palette.HeatColor(color, value, peak)
			}
			cell.Tooltip = tooltip(row, col, value)
			view.Cells[row][col] = cell
		}
	}
	return view
}

func (s *Session) yearCard(cardType string, year int, typeLabels map[string][]string) YearCard {
	entries := s.yearCardEntries(cardType, year)
	grid := calendar.YearGrid(year)
	card := YearCard{
		Type:  cardType,
		Year:  year,
		Grid:  grid,
		Stats: summary.Cards(summary.YearCardTotals(entries), s.units, false),
	}

	colors := palette.DefaultColors
	if cardType != aggregate.CombinedType {
		colors = s.palette.Colors(cardType)
	}

	single := s.yearMetrics[yearCardKey(cardType, year)]
	metric, weighted := single.Active()
	filterable := s.yearCardMetrics(cardType, year)
	for _, m := range aggregate.Metrics {
		total := 0.0
		for _, e := range entries {
			total += entryMetric(e, m)
		}
		card.Metrics = append(card.Metrics, MetricView{
			Metric:     m,
			Label:      m.Label(),
			Value:      aggregate.FormatMetric(s.units, m, total),
			Filterable: contains(filterable, m),
			Active:     single.Is(m),
		})
	}

	peak := 0.0
	if weighted {
		for _, e := range entries {
			if v := entryMetric(e, metric); v > peak {
				peak = v
			}
		}
	}

	for _, c := range grid.Cells() {
		cell := DayCell{Cell: c}
		if !c.InYear {
			card.Cells = append(card.Cells, cell)
			continue
		}

		entry := entries[c.Key]
		cell.Count = entry.Count
		cell.Color = colors[0]
		cell.Background = palette.Background{Kind: palette.BackgroundFlat, Colors: []string{colors[0]}}
		if entry.Count > 0 {
			if cardType == aggregate.CombinedType {
				cell.Color = s.palette.ColorForEntry(entry.Types)
				cell.Background = s.palette.BackgroundForEntry(entry.Types)
			} else {
				cell.Color = colors[4]
				cell.Background = palette.Background{Kind: palette.BackgroundFlat, Colors: []string{colors[4]}}
			}
			if weighted {
				cell.Color = palette.HeatColor(cell.Color, entryMetric(entry, metric), peak)
			}
		}
		cell.Tooltip = aggregate.CellTooltip(s.palette, s.units, c.Key, entry, cardType, typeLabels[c.Key])
		card.Cells = append(card.Cells, cell)
	}
	return card
}

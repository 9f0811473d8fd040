package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/selection"
)

func hour(h int) *int { return &h }

func testPayload() *payload.Payload {
	return &payload.Payload{
		Types:       []string{"Run", "Ride", "Swim"},
		Years:       []int{2023, 2024},
		Units:       payload.Units{Distance: "km", Elevation: "m"},
		GeneratedAt: "2024-03-05T10:00:00Z",
		Aggregates: payload.Aggregates{
			2024: {
				"Run": {
					"2024-01-07": {Count: 1, Distance: 5000, MovingTime: 1800, ElevationGain: 20},
					"2024-03-05": {Count: 1, Distance: 10000, MovingTime: 3600, ElevationGain: 40},
				},
				"Ride": {
					"2024-03-05": {Count: 1, Distance: 30000, MovingTime: 3600, ElevationGain: 300},
				},
			},
			2023: {
				"Swim": {
					"2023-06-12": {Count: 1, Distance: 1000, MovingTime: 1800},
				},
			},
		},
		Activities: []payload.Activity{
			{Type: "Run", Date: "2024-01-07", Year: 2024, Hour: hour(7)},
			{Type: "Run", Date: "2024-03-05", Year: 2024, Hour: hour(18)},
			{Type: "Ride", Date: "2024-03-05", Year: 2024, Hour: hour(7)},
			{Type: "Swim", Date: "2023-06-12", Year: 2023},
		},
	}
}

func TestNewSessionSelectsEverything(t *testing.T) {
	s := NewSession(testPayload())

	assert.Equal(t, []string{"Run", "Ride", "Swim"}, s.Types())
	assert.Equal(t, []int{2024, 2023}, s.Years())
	assert.Equal(t, MenuNone, s.OpenMenu())

	v := s.View()
	require.Len(t, v.Sections, 1)
	sec := v.Sections[0]
	assert.Equal(t, selection.AllActivitiesLabel, sec.Title)
	assert.Equal(t, aggregate.CombinedType, sec.Type)
	require.Len(t, sec.Years, 2)
	assert.Equal(t, 2024, sec.Years[0].Year)
	assert.False(t, sec.Years[0].Empty)

	assert.True(t, v.Snapshot.AllTypes)
	assert.True(t, v.Snapshot.AllYears)
	assert.True(t, v.TypeFilter.ClearDisabled)
	assert.Equal(t, selection.AllActivitiesLabel, v.TypeFilter.Label.Full)
	assert.True(t, strings.HasPrefix(v.Updated, "Last updated: "))
}

func TestToggleType(t *testing.T) {
	s := NewSession(testPayload())

	s.ToggleType("Run")
	assert.Equal(t, []string{"Run"}, s.Types())
	v := s.View()
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "Run", v.Sections[0].Type)
	assert.Equal(t, "Run Activities", v.Sections[0].Title)
	assert.False(t, v.TypeFilter.ClearDisabled)

	// deselecting the only type falls back to everything
	s.ToggleType("Run")
	assert.True(t, s.View().Snapshot.AllTypes)

	s.ToggleType("Run")
	s.ToggleType("Ride")
	assert.Equal(t, []string{"Run", "Ride"}, s.Types())
	v = s.View()
	assert.Equal(t, "Run + Ride Activities", v.Sections[0].Title)
	assert.Equal(t, "Run, Ride", v.TypeFilter.Label.Full)
	assert.Equal(t, selection.MultipleActivitiesLabel, v.TypeFilter.Label.Short)

	// selecting the last missing type collapses to all
	s.ToggleType("Swim")
	assert.True(t, s.View().Snapshot.AllTypes)

	s.ToggleType("Ride")
	s.ToggleType(AllKey)
	assert.True(t, s.View().Snapshot.AllTypes)

	s.ToggleType("Unknown")
	assert.True(t, s.View().Snapshot.AllTypes)
}

func TestClearFilters(t *testing.T) {
	s := NewSession(testPayload())
	s.ToggleType("Swim")
	s.ToggleYear(2023)

	s.ClearTypes()
	s.ClearYears()
	v := s.View()
	assert.True(t, v.Snapshot.AllTypes)
	assert.True(t, v.Snapshot.AllYears)
}

func TestTypeMenuCommit(t *testing.T) {
	s := NewSession(testPayload())

	s.OpenTypeMenu()
	require.Equal(t, MenuTypes, s.OpenMenu())
	s.MenuToggleType("Run")
	assert.Equal(t, []string{"Run", "Ride", "Swim"}, s.Types(), "draft must not leak")

	v := s.View()
	require.NotNil(t, v.Menu)
	require.Len(t, v.Menu.Options, 4)
	assert.False(t, v.Menu.Options[0].Active)
	assert.False(t, v.Menu.Options[1].Active)
	assert.True(t, v.Menu.Options[2].Active)

	s.MenuDone()
	assert.Equal(t, MenuNone, s.OpenMenu())
	assert.Equal(t, []string{"Ride", "Swim"}, s.Types())
}

func TestTypeMenuEmptyCommit(t *testing.T) {
	s := NewSession(testPayload())

	s.OpenTypeMenu()
	s.MenuToggleAll()
	draft := s.View().Menu
	assert.False(t, draft.Options[0].Active)
	for _, o := range draft.Options[1:] {
		assert.True(t, o.Active, o.Value)
	}

	s.MenuToggleType("Run")
	s.MenuToggleType("Ride")
	s.MenuToggleType("Swim")
	s.MenuDone()

	assert.Empty(t, s.Types())
	v := s.View()
	assert.Empty(t, v.Sections)
	assert.Equal(t, selection.NoActivitiesLabel, v.TypeFilter.Label.Full)
	assert.Equal(t, "0", v.Summary.Cards[0].Value)
}

func TestYearMenuEmptyCommitFallsBack(t *testing.T) {
	s := NewSession(testPayload())

	s.OpenYearMenu()
	s.MenuToggleYear(2024)
	s.MenuToggleYear(2023)
	s.MenuToggleType("Run")
	s.MenuDone()

	assert.Equal(t, []int{2024, 2023}, s.Years())
	assert.True(t, s.View().Snapshot.AllYears)
	assert.True(t, s.View().Snapshot.AllTypes)
}

func TestMenuDiscard(t *testing.T) {
	s := NewSession(testPayload())

	s.OpenTypeMenu()
	s.MenuToggleType("Run")
	s.MenuDiscard()
	assert.Equal(t, MenuNone, s.OpenMenu())
	assert.True(t, s.View().Snapshot.AllTypes)

	// opening the open menu closes it
	s.OpenYearMenu()
	s.OpenYearMenu()
	assert.Equal(t, MenuNone, s.OpenMenu())

	// opening the other menu drops the first draft
	s.OpenYearMenu()
	s.MenuToggleYear(2023)
	s.OpenTypeMenu()
	assert.Equal(t, MenuTypes, s.OpenMenu())
	assert.True(t, s.View().Snapshot.AllYears)

	// a click outside the menu discards it before applying
	s.MenuToggleType("Swim")
	s.ToggleYear(2024)
	assert.Equal(t, MenuNone, s.OpenMenu())
	assert.True(t, s.View().Snapshot.AllTypes)
	assert.Equal(t, []int{2024}, s.Years())
	assert.Nil(t, s.View().Menu)
}

func TestVisibleYearsPolicy(t *testing.T) {
	s := NewSession(testPayload(), WithVisibleYears(aggregate.TrimLeadingEmptyYears))

	s.ToggleYear(2023)
	assert.Equal(t, []int{2023}, s.Years())

	// Ride has no 2023 activity, so the year leaves the domain
	s.ToggleType("Ride")
	assert.Equal(t, []int{2024}, s.Years())
	v := s.View()
	assert.True(t, v.Snapshot.AllYears)
	assert.Equal(t, []int{2024}, v.VisibleYears)
	require.Len(t, v.YearFilter.Options, 2)
}

func TestEmptyCards(t *testing.T) {
	s := NewSession(testPayload())

	s.ToggleType("Swim")
	v := s.View()
	require.Len(t, v.Sections, 1)
	years := v.Sections[0].Years
	require.Len(t, years, 2)
	assert.True(t, years[0].Empty)
	assert.Equal(t, "no swim activities", years[0].EmptyMessage)
	assert.False(t, years[1].Empty)

	freq := v.Sections[0].Frequency
	assert.False(t, freq.Empty)
	assert.Equal(t, HourFallback, freq.HourFallback)
	assert.Empty(t, freq.Hour.Cells)

	s.ClearTypes()
	s.ToggleYear(2023)
	s.ToggleType("Ride")
	freq = s.View().Sections[0].Frequency
	assert.True(t, freq.Empty)
	assert.Equal(t, "no ride activities", freq.EmptyMessage)
}

func TestFrequencyCard(t *testing.T) {
	s := NewSession(testPayload())

	freq := s.View().Sections[0].Frequency
	require.Len(t, freq.Day.Cells, 2)
	assert.Equal(t, []int{2024, 2023}, freq.Day.Rows)
	assert.Equal(t, 1.0, freq.Day.Cells[0][0].Value)
	assert.Equal(t, 2.0, freq.Day.Cells[0][2].Value)
	assert.Equal(t, 0.0, freq.Day.Cells[1][0].Value)
	assert.NotEqual(t, freq.Day.Cells[0][1].Color, freq.Day.Cells[0][2].Color)
	assert.Contains(t, freq.Day.Cells[0][2].Tooltip, "2024")
	require.Len(t, freq.Hour.Cells, 2)
	assert.Equal(t, 2.0, freq.Hour.Cells[0][7].Value)
	assert.Len(t, freq.Weekly, 53)

	require.Len(t, freq.Facts, 4)
	for _, f := range freq.Facts {
		assert.True(t, f.Filterable, f.Key)
		assert.False(t, f.Active, f.Key)
	}
	require.Len(t, freq.Metrics, 3)
}

func TestToggleFact(t *testing.T) {
	s := NewSession(testPayload())

	s.ToggleFact(aggregate.FactMostActiveDay)
	v := s.View()
	assert.Equal(t, aggregate.FactMostActiveDay, v.Snapshot.Fact)
	freq := v.Sections[0].Frequency
	assert.True(t, freq.Facts[0].Active)

	// Tuesday wins, so only Tuesday activity remains
	assert.Equal(t, 0.0, freq.Day.Cells[0][0].Value)
	assert.Equal(t, 2.0, freq.Day.Cells[0][2].Value)

	s.ToggleFact(aggregate.FactMostActiveDay)
	assert.Empty(t, s.View().Snapshot.Fact)

	s.ToggleFact(aggregate.FactPeakHour)
	assert.Equal(t, aggregate.FactPeakHour, s.View().Snapshot.Fact)

	// Swim has no start times, so the peak hour can't filter anymore
	s.ToggleType("Swim")
	assert.Empty(t, s.View().Snapshot.Fact)
	s.ToggleFact(aggregate.FactPeakHour)
	assert.Empty(t, s.View().Snapshot.Fact)

	s.ToggleFact("bogus")
	assert.Empty(t, s.View().Snapshot.Fact)
}

func TestToggleMetric(t *testing.T) {
	s := NewSession(testPayload())

	s.ToggleMetric(aggregate.MetricDistance)
	v := s.View()
	assert.Equal(t, aggregate.MetricDistance, v.Snapshot.Metric)
	freq := v.Sections[0].Frequency
	assert.Equal(t, 5000.0, freq.Day.Cells[0][0].Value)
	assert.Equal(t, 40000.0, freq.Day.Cells[0][2].Value)
	assert.Contains(t, freq.Day.Cells[0][2].Tooltip, "Distance:")

	// facts stay on activity counts
	assert.Equal(t, "Tue (2)", freq.Facts[0].Value)

	s.ToggleMetric(aggregate.MetricElevationGain)
	assert.Equal(t, aggregate.MetricElevationGain, s.View().Snapshot.Metric)

	// Swim has no elevation
	s.ToggleType("Swim")
	assert.Empty(t, s.View().Snapshot.Metric)
	s.ToggleMetric(aggregate.MetricElevationGain)
	assert.Empty(t, s.View().Snapshot.Metric)
}

func TestToggleYearMetric(t *testing.T) {
	s := NewSession(testPayload())

	s.ToggleYearMetric(aggregate.CombinedType, 2024, aggregate.MetricDistance)
	card := s.View().Sections[0].Years[0]
	require.Len(t, card.Metrics, 3)
	assert.True(t, card.Metrics[0].Active)

	var weighted []DayCell
	for _, c := range card.Cells {
		if c.Count > 0 {
			weighted = append(weighted, c)
		}
	}
	require.Len(t, weighted, 2)
	for _, c := range weighted {
		assert.True(t, strings.HasPrefix(c.Color, "rgb("), c.Color)
	}

	// not a rendered card
	s.ToggleYearMetric("Run", 2024, aggregate.MetricDistance)
	v := s.View()
	require.Len(t, v.Sections, 1)
	assert.Equal(t, aggregate.CombinedType, v.Sections[0].Type)
	assert.True(t, v.Sections[0].Years[0].Metrics[0].Active)

	// the combined cards disappear with a single type selected
	s.ToggleType("Run")
	s.ToggleType(AllKey)
	card = s.View().Sections[0].Years[0]
	assert.False(t, card.Metrics[0].Active)
}

func TestTypeNamedAll(t *testing.T) {
	p := testPayload()
	p.Types = []string{"all", "Run"}
	p.Aggregates[2024]["all"] = p.Aggregates[2024]["Ride"]
	delete(p.Aggregates[2024], "Ride")
	p.Activities[2].Type = "all"
	s := NewSession(p)

	s.ToggleType("all")
	assert.Equal(t, []string{"all"}, s.Types())
	v := s.View()
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "all", v.Sections[0].Type)

	// the single-type card keeps its own metric state
	s.ToggleYearMetric("all", 2024, aggregate.MetricDistance)
	assert.True(t, s.View().Sections[0].Years[0].Metrics[0].Active)

	s.ToggleType(AllKey)
	v = s.View()
	assert.True(t, v.Snapshot.AllTypes)
	assert.Equal(t, aggregate.CombinedType, v.Sections[0].Type)
	assert.False(t, v.Sections[0].Years[0].Metrics[0].Active)
}

func TestSummary(t *testing.T) {
	s := NewSession(testPayload())

	sum := s.View().Summary
	require.Len(t, sum.Cards, 5)
	assert.Equal(t, "4", sum.Cards[0].Value)
	assert.Equal(t, "3", sum.Cards[4].Value)
	require.Len(t, sum.TypeCards, 3)
	for _, c := range sum.TypeCards {
		assert.False(t, c.Active, c.Type)
	}
	assert.Equal(t, 1, sum.Streaks.Longest)

	s.SelectTypeCard("Ride")
	sum = s.View().Summary
	assert.True(t, sum.TypeCards[1].Active)
	assert.Equal(t, "1", sum.Cards[0].Value)
	assert.Equal(t, "2", sum.TypeCards[0].Value)
}

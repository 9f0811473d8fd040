package summary

import (
	"testing"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/units"
)

func testPayload() *payload.Payload {
	return &payload.Payload{
		Types: []string{"Run", "Ride", "Swim"},
		Years: []int{2023, 2024},
		Aggregates: payload.Aggregates{
			2024: {
				"Run": {
					"2024-01-07": {Count: 1, Distance: 5000, MovingTime: 1800, ElevationGain: 20},
					"2024-01-08": {Count: 2, Distance: 10000, MovingTime: 3600, ElevationGain: 40},
				},
				"Ride": {
					"2024-01-08": {Count: 1, Distance: 30000, MovingTime: 3600, ElevationGain: 300},
				},
			},
			2023: {
				"Run": {"2023-06-11": {Count: 1, Distance: 8000, MovingTime: 2400}},
			},
		},
	}
}

func TestBuildTotals(t *testing.T) {
	p := testPayload()

	totals := BuildTotals(p, []string{"Run"}, []int{2024}, p.Types)
	if totals.Count != 3 {
		t.Errorf("Count = %d, want 3", totals.Count)
	}
	if totals.Distance != 15000 {
		t.Errorf("Distance = %v, want 15000", totals.Distance)
	}
	if totals.MovingTime != 5400 {
		t.Errorf("MovingTime = %v, want 5400", totals.MovingTime)
	}
	if totals.ActiveDays() != 2 {
		t.Errorf("ActiveDays = %d, want 2", totals.ActiveDays())
	}
	if totals.TypeTotals["Ride"] != 1 {
		t.Errorf("TypeTotals[Ride] = %d, want 1 even when unselected", totals.TypeTotals["Ride"])
	}
	if got, ok := totals.TypeTotals["Swim"]; !ok || got != 0 {
		t.Errorf("TypeTotals[Swim] = %d, %v, want a zero entry", got, ok)
	}

	both := BuildTotals(p, []string{"Run", "Ride"}, []int{2023, 2024}, nil)
	if both.Count != 5 {
		t.Errorf("Count = %d, want 5", both.Count)
	}
	if both.ActiveDays() != 3 {
		t.Errorf("ActiveDays = %d, want 3 (shared dates count once)", both.ActiveDays())
	}
	if both.TypeTotals["Run"] != 4 {
		t.Errorf("TypeTotals[Run] = %d, want 4", both.TypeTotals["Run"])
	}

	single := BuildTotals(p, []string{"Run"}, []int{2024}, []string{"Run"})
	if len(single.TypeTotals) != 0 {
		t.Errorf("single card type should not be counted, got %v", single.TypeTotals)
	}
}

func TestCards(t *testing.T) {
	u := units.New(payload.Units{Distance: "km", Elevation: "m"})

	cards := Cards(Totals{Count: 1234, Distance: 5000, MovingTime: 3660, ElevationGain: 12.4, ActiveDates: []string{"2024-01-01"}}, u, true)
	want := []Card{
		{"Total Activities", "1,234"},
		{"Total Distance", "5.0 km"},
		{"Total Time", "1h 1m"},
		{"Total Elevation", "12 m"},
		{"Active Days", "1"},
	}
	if len(cards) != len(want) {
		t.Fatalf("len(cards) = %d, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("cards[%d] = %+v, want %+v", i, cards[i], want[i])
		}
	}

	empty := Cards(Totals{}, u, false)
	if len(empty) != 4 {
		t.Fatalf("len(empty) = %d, want 4", len(empty))
	}
	if empty[1].Value != Placeholder || empty[3].Value != Placeholder {
		t.Errorf("zero totals should show placeholder, got %+v", empty)
	}
	if empty[2].Value != "0m" {
		t.Errorf("Total Time = %s, want 0m", empty[2].Value)
	}
}

func TestYearCardTotals(t *testing.T) {
	entries := map[string]aggregate.CombinedEntry{
		"2024-01-07": {Count: 1, Distance: 100, MovingTime: 60},
		"2024-01-08": {Count: 2, Distance: 200, ElevationGain: 5},
	}
	got := YearCardTotals(entries)
	if got.Count != 3 || got.Distance != 300 || got.MovingTime != 60 || got.ElevationGain != 5 {
		t.Errorf("YearCardTotals = %+v", got)
	}
}

func TestTypeCards(t *testing.T) {
	p := testPayload()
	pal := palette.New(p)
	totals := BuildTotals(p, []string{"Run"}, []int{2024}, p.Types)

	cards := TypeCards(pal, totals, p.Types, func(t string) bool { return t == "Run" })
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
	if !cards[0].Active || cards[1].Active {
		t.Errorf("active flags = %v %v", cards[0].Active, cards[1].Active)
	}
	if cards[1].Value != "1" || cards[2].Value != "0" {
		t.Errorf("values = %s %s", cards[1].Value, cards[2].Value)
	}
	if cards[0].Accent != palette.FallbackColor("Run") {
		t.Errorf("accent = %s", cards[0].Accent)
	}

	if got := TypeCards(pal, totals, []string{"Run"}, nil); got != nil {
		t.Errorf("single type should render no cards, got %v", got)
	}
}

func TestCalculateStreaks(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  Streaks
	}{
		{"empty", nil, Streaks{}},
		{"single", []string{"2024-01-01"}, Streaks{1, 1}},
		{"consecutive", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, Streaks{3, 3}},
		{"broken latest", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-10"}, Streaks{3, 1}},
		{"across year end", []string{"2023-12-31", "2024-01-01"}, Streaks{2, 2}},
		{"across dst", []string{"2024-03-09", "2024-03-10", "2024-03-11"}, Streaks{3, 3}},
		{"duplicates and junk", []string{"2024-01-01", "2024-01-01", "bogus", "2024-01-02"}, Streaks{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateStreaks(tt.dates); got != tt.want {
				t.Errorf("CalculateStreaks(%v) = %+v, want %+v", tt.dates, got, tt.want)
			}
		})
	}
}

package payload

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultOtherBucket is the catch-all type key used when the payload doesn't name one
const DefaultOtherBucket = "OtherSports"

// Payload is the precomputed dashboard document produced by the ETL pipeline
type Payload struct {
	Types       []string            `json:"types"`
	Years       []int               `json:"years"`
	Aggregates  Aggregates          `json:"aggregates"`
	Activities  []Activity          `json:"activities"`
	TypeMeta    map[string]TypeMeta `json:"type_meta,omitempty"`
	OtherBucket string              `json:"other_bucket,omitempty"`
	Units       Units               `json:"units"`
	GeneratedAt string              `json:"generated_at,omitempty"`
	Source      string              `json:"source,omitempty"`
}

// Aggregates maps year -> type -> date key -> day aggregate
type Aggregates map[int]map[string]map[string]DayAggregate

// DayAggregate is the total for one activity type on one day
type DayAggregate struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`       // meters
	MovingTime    float64 `json:"moving_time"`    // seconds
	ElevationGain float64 `json:"elevation_gain"` // meters
	ActivityIDs   []int64 `json:"activity_ids,omitempty"`
}

// Activity is a single logged activity. Only the fields needed for
// time-of-day and subtype breakdowns are carried; metrics live in the
// day aggregates.
type Activity struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	RawType string `json:"raw_type,omitempty"`
	Date    string `json:"date"`
	Year    int    `json:"year"`

	// Hour is nil when the activity has no usable start time
	Hour *int `json:"hour,omitempty"`
}

// TypeMeta holds display metadata for an activity type
type TypeMeta struct {
	Label         string `json:"label,omitempty"`
	Accent        string `json:"accent,omitempty"`
	CountSingular string `json:"count_singular,omitempty"`
	CountPlural   string `json:"count_plural,omitempty"`
	Singular      string `json:"singular,omitempty"`
	Plural        string `json:"plural,omitempty"`
}

// Units selects the display unit system
type Units struct {
	Distance  string `json:"distance"`  // "mi" or "km"
	Elevation string `json:"elevation"` // "ft" or "m"
}

// UnmarshalJSON tolerates the loosely typed fields the pipeline emits:
// year and hour may arrive as numbers, numeric strings or null.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Subtype string          `json:"subtype"`
		RawType string          `json:"raw_type"`
		Date    string          `json:"date"`
		Year    json.RawMessage `json:"year"`
		Hour    json.RawMessage `json:"hour"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.Type = raw.Type
	a.Subtype = raw.Subtype
	a.RawType = raw.RawType
	a.Date = raw.Date
	a.Year = 0
	a.Hour = nil

	if year, ok := looseInt(raw.Year); ok {
		a.Year = year
	}
	if hour, ok := looseInt(raw.Hour); ok && hour >= 0 && hour <= 23 {
		a.Hour = &hour
	}
	return nil
}

// HasHour reports whether the activity carries a valid hour of day
func (a Activity) HasHour() bool {
	return a.Hour != nil && *a.Hour >= 0 && *a.Hour <= 23
}

// looseInt reads an integral JSON number or numeric string
func looseInt(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Day returns the aggregate for (year, type, date) and whether it exists
func (p *Payload) Day(year int, activityType, date string) (DayAggregate, bool) {
	entry, ok := p.Aggregates[year][activityType][date]
	return entry, ok
}

// HasType reports whether t is one of the payload's known types
func (p *Payload) HasType(t string) bool {
	for _, known := range p.Types {
		if known == t {
			return true
		}
	}
	return false
}

package palette

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"strava-heatmaps/internal/payload"
)

// Base colors
const (
	// NeutralColor is used for cells with nothing to compare against
	NeutralColor = "#1f2937"

	// EmptyColor marks a cell with no activity in a populated matrix
	EmptyColor = "#0f172a"

	// MultiTypeColor marks days or cards that combine several types
	MultiTypeColor = "#b967ff"

	// StatHeatColor highlights summary statistics
	StatHeatColor = "#05ffa1"
)

// heatGamma keeps low but nonzero values distinguishable from empty cells
const heatGamma = 0.75

// DefaultColors is the palette used for the combined "all" view
var DefaultColors = [5]string{NeutralColor, NeutralColor, NeutralColor, NeutralColor, NeutralColor}

// Fallback is the fixed palette types without an accent are hashed into
var Fallback = [8]string{"#f15bb5", "#fee440", "#00bbf9", "#00f5d4", "#9b5de5", "#fb5607", "#ffbe0b", "#72efdd"}

// knownLabels fixes labels that prettifying gets wrong
var knownLabels = map[string]string{
	"WalkHike":       "Walk / Hike",
	"MindBody":       "Mind & Body",
	"EBikeRide":      "E-Bike Ride",
	"OtherSports":    "Other Sports",
	"WeightTraining": "Weight Training",
}

// Palette resolves colors and labels for activity types
type Palette struct {
	meta        map[string]payload.TypeMeta
	overrides   map[string]string
	otherBucket string
}

// Option configures a Palette
type Option func(*Palette)

// WithAccentOverrides sets accents that win over the payload metadata
func WithAccentOverrides(accents map[string]string) Option {
	return func(p *Palette) {
		for t, c := range accents {
			if _, ok := HexToRGB(c); ok {
				p.overrides[t] = c
			}
		}
	}
}

// New builds a palette from the payload's metadata. Known types without
// metadata get a prettified label and a hashed accent.
func New(p *payload.Payload, opts ...Option) *Palette {
	meta := make(map[string]payload.TypeMeta, len(p.TypeMeta)+len(p.Types))
	for k, v := range p.TypeMeta {
		meta[k] = v
	}
	for _, t := range p.Types {
		if _, ok := meta[t]; !ok {
			meta[t] = payload.TypeMeta{Label: defaultLabel(t), Accent: FallbackColor(t)}
		}
	}

	other := p.OtherBucket
	if other == "" {
		other = payload.DefaultOtherBucket
	}
	pal := &Palette{meta: meta, overrides: make(map[string]string), otherBucket: other}
	for _, opt := range opts {
		opt(pal)
	}
	return pal
}

// OtherBucket returns the catch-all type key
func (p *Palette) OtherBucket() string {
	return p.otherBucket
}

// IsOther reports whether t is the catch-all bucket
func (p *Palette) IsOther(t string) bool {
	return t == p.otherBucket
}

// FallbackColor deterministically maps a type to one of the Fallback colors
// using the sum of (i+1)*code(i) over its characters
func FallbackColor(t string) string {
	if t == "" {
		return Fallback[0]
	}
	index := 0
	for i, code := range utf16Units(t) {
		index += (i + 1) * int(code)
	}
	return Fallback[index%len(Fallback)]
}

// Accent returns the accent color of t
func (p *Palette) Accent(t string) string {
	if c, ok := p.overrides[t]; ok {
		return c
	}
	if m, ok := p.meta[t]; ok && m.Accent != "" {
		return m.Accent
	}
	return FallbackColor(t)
}

// Colors returns the four background shades plus the accent of t
func (p *Palette) Colors(t string) [5]string {
	c := DefaultColors
	c[4] = p.Accent(t)
	return c
}

// ColorForEntry returns the flat color of a calendar cell given the types
// active on that day
func (p *Palette) ColorForEntry(types []string) string {
	switch len(types) {
	case 0:
		return DefaultColors[0]
	case 1:
		return p.Accent(types[0])
	default:
		return MultiTypeColor
	}
}

// FrequencyColor picks the accent of the standalone stats matrices
func (p *Palette) FrequencyColor(types []string, allYearsSelected bool) string {
	if len(types) == 1 {
		return p.Accent(types[0])
	}
	if allYearsSelected || len(types) == 0 {
		return MultiTypeColor
	}
	return p.Accent(types[0])
}

// FrequencyCardColor picks the accent of the activity frequency card
func (p *Palette) FrequencyCardColor(types []string) string {
	if len(types) == 1 {
		return p.Accent(types[0])
	}
	return MultiTypeColor
}

// HeatColor blends from EmptyColor toward base as value approaches max.
// The result is "rgb(r, g, b)" with rounded channels.
func HeatColor(base string, value, max float64) string {
	if max <= 0 {
		return DefaultColors[0]
	}
	if value <= 0 {
		return EmptyColor
	}

	rgb, ok := HexToRGB(base)
	empty, _ := HexToRGB(EmptyColor)
	if !ok {
		return base
	}

	intensity := math.Pow(math.Min(value/max, 1), heatGamma)
	blend := func(from, to int) int {
		return int(math.Round(float64(from) + float64(to-from)*intensity))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)",
		blend(empty.R, rgb.R),
		blend(empty.G, rgb.G),
		blend(empty.B, rgb.B),
	)
}

// RGB is an 8-bit color
type RGB struct {
	R, G, B int
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToRGB parses a #rrggbb color
func HexToRGB(hex string) (RGB, bool) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(cleaned) != 6 {
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + cleaned)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, true
}

// ParseRGB parses either #rrggbb or the rgb(r, g, b) form HeatColor produces
func ParseRGB(s string) (RGB, bool) {
	if strings.HasPrefix(s, "#") {
		return HexToRGB(s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, false
	}
	return c, true
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Prettify turns a type key like "TrailRun" or "open_water" into a label
func Prettify(t string) string {
	if t == "" {
		t = "Other"
	}
	s := camelBoundary.ReplaceAllString(t, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}

// DisplayType returns the human label of t
func (p *Palette) DisplayType(t string) string {
	if m, ok := p.meta[t]; ok && m.Label != "" {
		return m.Label
	}
	return defaultLabel(t)
}

func defaultLabel(t string) string {
	if label, ok := knownLabels[t]; ok {
		return label
	}
	return Prettify(t)
}

// DisplayTypes maps DisplayType over types
func (p *Palette) DisplayTypes(types []string) []string {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = p.DisplayType(t)
	}
	return labels
}

// SubtypeLabel returns the label of an activity's subtype, or "" when it
// has none worth showing
func (p *Palette) SubtypeLabel(a payload.Activity) string {
	raw := a.Subtype
	if raw == "" {
		raw = a.RawType
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if p.IsOther(a.Type) && value == a.Type {
		return ""
	}
	if m, ok := p.meta[value]; ok && m.Label != "" {
		return m.Label
	}
	return defaultLabel(value)
}

// utf16Units splits s into UTF-16 code units, the unit the color hash is
// defined over
func utf16Units(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

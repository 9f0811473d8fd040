package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Nouns are the words used to count activities of one type
type Nouns struct {
	Singular string
	Plural   string
}

var genericNouns = Nouns{Singular: "activity", Plural: "activities"}

var (
	esSuffix  = regexp.MustCompile(`(?i)(s|x|z|ch|sh)$`)
	iesSuffix = regexp.MustCompile(`(?i)[^aeiou]y$`)
	ingOrIon  = regexp.MustCompile(`(?i)(ing|ion)$`)
)

// Pluralize applies the English suffix rules the count labels need
func Pluralize(label string) string {
	switch {
	case esSuffix.MatchString(label):
		return label + "es"
	case iesSuffix.MatchString(label):
		return label[:len(label)-1] + "ies"
	default:
		return label + "s"
	}
}

// CountNouns returns the singular and plural count nouns for t.
// Explicit metadata wins; otherwise nouns derive from the type label.
func (p *Palette) CountNouns(t string) Nouns {
	if t == "" {
		return genericNouns
	}

	meta := p.meta[t]
	singular := strings.ToLower(strings.TrimSpace(firstNonEmpty(meta.CountSingular, meta.Singular)))
	plural := strings.ToLower(strings.TrimSpace(firstNonEmpty(meta.CountPlural, meta.Plural)))
	if singular != "" && plural != "" {
		return Nouns{Singular: singular, Plural: plural}
	}

	base := strings.ToLower(strings.TrimSpace(firstNonEmpty(singular, p.DisplayType(t))))
	if base == "" {
		return genericNouns
	}
	if plural != "" {
		return Nouns{Singular: base, Plural: plural}
	}

	if p.IsOther(t) || strings.Contains(base, " ") || ingOrIon.MatchString(base) {
		return Nouns{Singular: base + " activity", Plural: base + " activities"}
	}
	return Nouns{Singular: base, Plural: Pluralize(base)}
}

// FormatActivityCountLabel renders "3 runs", or "3 activities" when more
// than one type (or none) is involved
func (p *Palette) FormatActivityCountLabel(count int, types []string) string {
	nouns := genericNouns
	if len(types) == 1 {
		nouns = p.CountNouns(types[0])
	}
	if count == 1 {
		return fmt.Sprintf("%d %s", count, nouns.Singular)
	}
	return fmt.Sprintf("%d %s", count, nouns.Plural)
}

// ActivitiesTitle renders the section header for a set of types
func (p *Palette) ActivitiesTitle(types []string) string {
	if len(types) == 0 {
		return "Activities"
	}
	return strings.Join(p.DisplayTypes(types), " + ") + " Activities"
}

// EmptyMessage renders the text of an empty-state card for label
func EmptyMessage(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if strings.HasSuffix(normalized, " activities") || strings.HasSuffix(normalized, " activity") {
		return "no " + normalized
	}
	return "no " + normalized + " activities"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// BackgroundKind describes how a multi-type cell is painted
type BackgroundKind int

const (
	BackgroundFlat     BackgroundKind = iota // single color
	BackgroundDiagonal                       // two colors split 50/50
	BackgroundConic                          // N equal angular shares
)

// Background is a cell fill: a flat color or a gradient over distinct accents
type Background struct {
	Kind   BackgroundKind
	Colors []string
}

// String renders the background as a CSS value
func (b Background) String() string {
	switch b.Kind {
	case BackgroundDiagonal:
		return fmt.Sprintf("linear-gradient(135deg, %s 0 50%%, %s 50%% 100%%)", b.Colors[0], b.Colors[1])
	case BackgroundConic:
		share := 360 / float64(len(b.Colors))
		stops := make([]string, len(b.Colors))
		for i, c := range b.Colors {
			stops[i] = fmt.Sprintf("%s %sdeg %sdeg", c, formatDegrees(share*float64(i)), formatDegrees(share*float64(i+1)))
		}
		return "conic-gradient(" + strings.Join(stops, ", ") + ")"
	default:
		if len(b.Colors) == 0 {
			return DefaultColors[0]
		}
		return b.Colors[0]
	}
}

// MultiTypeBackground builds the fill for a day shared by several types.
// Types sharing an accent collapse, so two types with one color stay flat.
func (p *Palette) MultiTypeBackground(types []string) Background {
	seen := make(map[string]bool, len(types))
	var colors []string
	for _, t := range types {
		c := strings.ToLower(p.Accent(t))
		if seen[c] {
			continue
		}
		seen[c] = true
		colors = append(colors, p.Accent(t))
	}

	switch len(colors) {
	case 0:
		return Background{Kind: BackgroundFlat, Colors: []string{DefaultColors[0]}}
	case 1:
		return Background{Kind: BackgroundFlat, Colors: colors}
	case 2:
		return Background{Kind: BackgroundDiagonal, Colors: colors}
	default:
		return Background{Kind: BackgroundConic, Colors: colors}
	}
}

// BackgroundForEntry is the gradient-aware variant of ColorForEntry
func (p *Palette) BackgroundForEntry(types []string) Background {
	if len(types) <= 1 {
		return Background{Kind: BackgroundFlat, Colors: []string{p.ColorForEntry(types)}}
	}
	return p.MultiTypeBackground(types)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

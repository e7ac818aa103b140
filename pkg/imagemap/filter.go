package imagemap

import (
	"html"
	"regexp"

	"spellmap/pkg/errors"
)

// DefaultExclude lists the patterns dropped by the default filter. They
// match the structural furniture of DragonRealms spell-tree diagrams:
// circle markers, legend boxes, requirement notes, tier headers.
var DefaultExclude = []string{
	`●`,
	`○`,
	`^Circle \d+`,
	`^Legend$`,
	`^Requires:`,
	`^Special requirements`,
	`^Signature spells`,
	`^Metaspell`,
	`^All .+ Spells$`,
	`, `,
	`^Spell Slot`,
	`^(Intro|Basic|Intermediate|Advanced|Esoteric)$`,
}

// tagPattern strips markup tags after entity decoding. Non-greedy, and a
// tag never spans lines.
var tagPattern = regexp.MustCompile(`<.*?>`)

// CleanLabel normalizes a raw cell value for filtering and display: HTML
// entities are decoded first, then markup tags are stripped. Decoding runs
// first, so entity-encoded tags are stripped too. The result is not trimmed.
func CleanLabel(raw string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(raw), "")
}

// Filter drops labels matching any of its exclusion patterns.
type Filter struct {
	sources  []string
	patterns []*regexp.Regexp
}

var defaultFilter = mustFilter(DefaultExclude)

func mustFilter(patterns []string) *Filter {
	f, err := NewFilter(patterns)
	if err != nil {
		panic(err)
	}
	return f
}

// DefaultFilter returns the filter compiled from DefaultExclude.
func DefaultFilter() *Filter { return defaultFilter }

// NewFilter compiles exclusion patterns. Matching is case-insensitive and
// unanchored; anchor with ^ and $ inside the pattern where needed.
func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{
		sources:  patterns,
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFilter, err, "invalid exclude pattern %q", p)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match returns the first exclusion pattern matching the label.
func (f *Filter) Match(label string) (pattern string, ok bool) {
	for i, re := range f.patterns {
		if re.MatchString(label) {
			return f.sources[i], true
		}
	}
	return "", false
}

// Excludes reports whether the label matches any exclusion pattern.
func (f *Filter) Excludes(label string) bool {
	_, ok := f.Match(label)
	return ok
}

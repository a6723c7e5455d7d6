package props

import (
	"path/filepath"
	"slices"
	"strings"
)

// Filter controls which properties are retained on features. Include and
// drop entries are glob patterns as understood by filepath.Match.
type Filter struct {
	includes []string
	drops    []string
	keepAll  bool
}

// NewFilter builds a filter. With no includes, keepAll decides whether
// unmatched keys survive.
func NewFilter(include, drop []string, keepAll bool) *Filter {
	return &Filter{
		includes: cleanPatterns(include),
		drops:    cleanPatterns(drop),
		keepAll:  keepAll,
	}
}

func cleanPatterns(in []string) []string {
	var out []string
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Apply returns the subset of props that passes the filter. A nil map stays nil.
func (f *Filter) Apply(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for key, value := range props {
		if f.Keep(key) {
			out[key] = value
		}
	}
	return out
}

// Keep reports whether key passes the filter. Drops win over includes.
func (f *Filter) Keep(key string) bool {
	if matchAny(f.drops, key) {
		return false
	}
	if len(f.includes) > 0 {
		return matchAny(f.includes, key)
	}
	return f.keepAll
}

// Keys returns the include patterns in the order given.
func (f *Filter) Keys() []string {
	return slices.Clone(f.includes)
}

func matchAny(patterns []string, key string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, key); ok {
			return true
		}
	}
	return false
}

// Package normalize compares summoner names the way players type them.
package normalize

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"
)

// Name trims, case-folds and collapses inner whitespace runs to one space.
func Name(name string) string {
	// cases.Caser keeps state between calls, so it is not shared.
	folded := cases.Fold().String(name)
	return strings.Join(strings.Fields(folded), " ")
}

// Same reports whether a and b refer to the same summoner.
func Same(a, b string) bool {
	return Name(a) == Name(b)
}

// Set returns the normalized form of names as a set.
func Set(names ...string) mapset.Set[string] {
	s := mapset.NewThreadUnsafeSetWithSize[string](len(names))
	for _, name := range names {
		s.Add(Name(name))
	}
	return s
}

// Unique drops blank names and later duplicates, keeping first-seen order
// and the original spelling.
func Unique(names []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := Name(name)
		if key == "" || !seen.Add(key) {
			continue
		}
		out = append(out, strings.TrimSpace(name))
	}
	return out
}

// Split parses a comma separated argument list: "name1, name2".
func Split(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	return Unique(strings.Split(args, ","))
}

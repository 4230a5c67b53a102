// SPDX-License-Identifier: MPL-2.0

// Package diff compares two parameter namespaces by path relative to their
// respective prefixes.
package diff

import (
	"sort"

	"github.com/Specter099/ssmtree/internal/param"
)

// Change pairs the two versions of a parameter whose value differs between
// the namespaces.
type Change struct {
	Old param.Parameter
	New param.Parameter
}

// Delta is the result of comparing two namespaces. Each slice is ordered by
// relative key ascending.
type Delta struct {
	// Added holds parameters present only in the second namespace.
	Added []param.Parameter
	// Removed holds parameters present only in the first namespace.
	Removed []param.Parameter
	// Changed holds (old, new) pairs whose values differ.
	Changed []Change
}

// Empty reports whether the two namespaces are identical.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Namespaces compares paramsA under prefixA against paramsB under prefixB.
//
// Parameters are matched by their path relative to their own prefix, so
// /app/prod/db/pass and /app/staging/db/pass compare as the same key
// "db/pass" when the prefixes are /app/prod and /app/staging. Only Value is
// compared for changes; a same-value pair with differing types is not
// reported.
func Namespaces(paramsA []param.Parameter, prefixA string, paramsB []param.Parameter, prefixB string) Delta {
	mapA := byRelativeKey(paramsA, prefixA)
	mapB := byRelativeKey(paramsB, prefixB)

	var d Delta
	for _, k := range sortedKeys(mapA) {
		if _, ok := mapB[k]; !ok {
			d.Removed = append(d.Removed, mapA[k])
		}
	}
	for _, k := range sortedKeys(mapB) {
		if _, ok := mapA[k]; !ok {
			d.Added = append(d.Added, mapB[k])
		}
	}
	for _, k := range sortedKeys(mapA) {
		b, ok := mapB[k]
		if !ok {
			continue
		}
		if a := mapA[k]; a.Value != b.Value {
			d.Changed = append(d.Changed, Change{Old: a, New: b})
		}
	}
	return d
}

func byRelativeKey(params []param.Parameter, prefix string) map[string]param.Parameter {
	out := make(map[string]param.Parameter, len(params))
	for _, p := range params {
		out[param.Relative(p.Path, prefix)] = p
	}
	return out
}

func sortedKeys(m map[string]param.Parameter) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

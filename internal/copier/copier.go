// SPDX-License-Identifier: MPL-2.0

// Package copier duplicates a parameter namespace under a new prefix by
// rewriting source paths and issuing one write per parameter.
package copier

import (
	"context"
	"sort"
	"strings"

	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/store"
)

// Failure records a single destination path that could not be written.
type Failure struct {
	Path   string
	Reason string
}

// Result reports the outcome of an Execute call. A total failure is still a
// Result with an empty Written slice, never an error.
type Result struct {
	Written []string
	Failed  []Failure
}

// Options tunes an Execute call.
type Options struct {
	// Overwrite is passed through to the sink; the copier never pre-checks
	// destination existence itself.
	Overwrite bool
	// KMSKeyID is attached to SecureString writes when non-empty.
	KMSKeyID string
	// Progress, when set, is called after each write attempt with the number
	// of parameters processed so far and the total.
	Progress func(done, total int)
}

// Rewrite maps a source path into the destination namespace. Trailing
// slashes on both prefixes are ignored. A path equal to sourcePrefix maps to
// destPrefix; a path outside the source subtree passes through unchanged.
func Rewrite(path, sourcePrefix, destPrefix string) string {
	sourcePrefix = strings.TrimRight(sourcePrefix, "/")
	destPrefix = strings.TrimRight(destPrefix, "/")
	if strings.HasPrefix(path, sourcePrefix+"/") {
		return destPrefix + path[len(sourcePrefix):]
	}
	if path == sourcePrefix {
		return destPrefix
	}
	return path
}

// Plan returns the destination paths Execute would write, in ascending
// source-path order. It performs no side effects.
func Plan(params []param.Parameter, sourcePrefix, destPrefix string) []string {
	ordered := sortedByPath(params)
	planned := make([]string, 0, len(ordered))
	for _, p := range ordered {
		planned = append(planned, Rewrite(p.Path, sourcePrefix, destPrefix))
	}
	return planned
}

// Execute writes every parameter to its rewritten destination path, one
// blocking write at a time in ascending source-path order.
//
// Execute is not transactional: a failed write is recorded in the result and
// processing continues; already-written parameters are never rolled back.
func Execute(ctx context.Context, params []param.Parameter, sourcePrefix, destPrefix string, sink store.Putter, opts Options) Result {
	ordered := sortedByPath(params)
	res := Result{}
	for i, p := range ordered {
		destPath := Rewrite(p.Path, sourcePrefix, destPrefix)

		in := store.PutInput{
			Path:      destPath,
			Value:     p.Value,
			Kind:      p.Kind,
			Overwrite: opts.Overwrite,
		}
		if p.IsSecure() {
			in.KeyID = opts.KMSKeyID
		}

		if err := sink.Put(ctx, in); err != nil {
			res.Failed = append(res.Failed, Failure{Path: destPath, Reason: err.Error()})
		} else {
			res.Written = append(res.Written, destPath)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(ordered))
		}
	}
	return res
}

func sortedByPath(params []param.Parameter) []param.Parameter {
	out := make([]param.Parameter, len(params))
	copy(out, params)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

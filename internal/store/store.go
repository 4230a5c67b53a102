// SPDX-License-Identifier: MPL-2.0

// Package store defines the narrow interface the rest of ssmtree uses to
// talk to the remote parameter store, plus its AWS SSM implementation.
package store

import (
	"context"

	"github.com/Specter099/ssmtree/internal/param"
)

// PutInput describes a single parameter write.
type PutInput struct {
	// Path is the destination parameter path.
	Path string
	// Value is the payload to write.
	Value string
	// Kind selects the parameter type at the destination.
	Kind param.Kind
	// Overwrite allows replacing an existing destination parameter. When
	// false the store rejects writes to existing paths.
	Overwrite bool
	// KeyID optionally names the encryption key for SecureString writes.
	// Empty means the store's default key.
	KeyID string
}

// Putter writes a single parameter. Implementations report overwrite-denied
// and other per-write failures through the returned error.
type Putter interface {
	Put(ctx context.Context, in PutInput) error
}

// Interface is the full remote surface ssmtree depends on. The core never
// touches the SDK client directly.
type Interface interface {
	// ListUnder returns every parameter below prefix (recursive), fully
	// paginated and sorted by path ascending. When decrypt is true,
	// SecureString values are returned in plaintext.
	ListUnder(ctx context.Context, prefix string, decrypt bool) ([]param.Parameter, error)

	// GetExact returns the parameter at exactly path, or (nil, nil) when no
	// parameter exists there.
	GetExact(ctx context.Context, path string, decrypt bool) (*param.Parameter, error)

	Putter
}

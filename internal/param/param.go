// SPDX-License-Identifier: MPL-2.0

package param

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the closed set of parameter types supported by the store.
type Kind string

const (
	// KindString is a plain string parameter.
	KindString Kind = "String"
	// KindSecureString is an encrypted-at-rest parameter; its value may be
	// ciphertext or plaintext depending on whether the fetch decrypted it.
	KindSecureString Kind = "SecureString"
	// KindStringList is a comma-separated list parameter.
	KindStringList Kind = "StringList"
)

// ParseKind validates s against the closed enumeration.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindString, KindSecureString, KindStringList:
		return k, nil
	default:
		return "", fmt.Errorf("unknown parameter type %q", s)
	}
}

// Parameter is a single key-value record fetched from the parameter store.
// It is treated as an immutable value after construction.
type Parameter struct {
	// Path is the full slash-delimited path, e.g. /app/prod/db/password.
	Path string
	// Name is the last non-empty path segment, e.g. "password".
	Name string
	// Value is the payload. For SecureString parameters this is ciphertext
	// unless the fetch was performed with decryption enabled.
	Value string
	// Kind is one of String, SecureString, StringList.
	Kind Kind
	// Version is the store-assigned monotonically increasing version.
	Version int64
	// LastModified is informational only.
	LastModified time.Time
}

// New constructs a Parameter, deriving Name from path and rejecting an
// out-of-enumeration kind.
func New(path, value, kind string, version int64, lastModified time.Time) (Parameter, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Parameter{}, fmt.Errorf("parameter %s: %w", path, err)
	}
	return Parameter{
		Path:         path,
		Name:         NameOf(path),
		Value:        value,
		Kind:         k,
		Version:      version,
		LastModified: lastModified,
	}, nil
}

// NameOf returns the last non-empty slash-separated segment of path, or the
// whole path when there are no segments (e.g. "/").
func NameOf(path string) string {
	name := path
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			name = seg
		}
	}
	return name
}

// IsSecure reports whether the parameter is a SecureString.
func (p Parameter) IsSecure() bool { return p.Kind == KindSecureString }

// IsStringList reports whether the parameter is a StringList.
func (p Parameter) IsStringList() bool { return p.Kind == KindStringList }

// Relative strips prefix from path. Trailing slashes on the prefix are
// ignored. A path outside the prefix is returned unchanged.
func Relative(path, prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix)+1:]
	}
	return path
}

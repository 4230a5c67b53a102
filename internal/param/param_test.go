// SPDX-License-Identifier: MPL-2.0

package param_test

import (
	"testing"
	"time"

	"github.com/Specter099/ssmtree/internal/param"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"String", "SecureString", "StringList"} {
		k, err := param.ParseKind(s)
		if err != nil {
			t.Errorf("ParseKind(%q) error = %v", s, err)
		}
		if string(k) != s {
			t.Errorf("ParseKind(%q) = %q, want %q", s, k, s)
		}
	}
}

func TestParseKind_Invalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "string", "SecretString", "Int"} {
		if _, err := param.ParseKind(s); err == nil {
			t.Errorf("ParseKind(%q) = nil error, want error", s)
		}
	}
}

func TestNew_DerivesName(t *testing.T) {
	t.Parallel()

	p, err := param.New("/app/prod/db/password", "hunter2", "SecureString", 3, time.Time{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name != "password" {
		t.Errorf("Name = %q, want %q", p.Name, "password")
	}
	if !p.IsSecure() {
		t.Error("IsSecure() = false, want true")
	}
}

func TestNew_RootPathName(t *testing.T) {
	t.Parallel()

	p, err := param.New("/", "v", "String", 1, time.Time{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name != "/" {
		t.Errorf("Name = %q, want %q", p.Name, "/")
	}
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := param.New("/a", "v", "Binary", 1, time.Time{}); err == nil {
		t.Fatal("New() with unknown kind: want error, got nil")
	}
}

func TestRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, prefix, want string
	}{
		{"/app/prod/db/host", "/app/prod", "db/host"},
		{"/app/prod/db/host", "/app/prod/", "db/host"},
		{"/app/prod", "/app/prod", "/app/prod"},
		{"/other/key", "/app/prod", "/other/key"},
	}
	for _, tt := range tests {
		if got := param.Relative(tt.path, tt.prefix); got != tt.want {
			t.Errorf("Relative(%q, %q) = %q, want %q", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	valid := []string{"/", "/app", "/app/prod/db-host", "/a_b/c.d/e-f"}
	for _, p := range valid {
		if err := param.ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) error = %v, want nil", p, err)
		}
	}

	invalid := []string{"", "  ", "app/prod", "/app prod", "/app/pro d", "relative"}
	for _, p := range invalid {
		if err := param.ValidatePath(p); err == nil {
			t.Errorf("ValidatePath(%q) = nil error, want error", p)
		}
	}
}

// SPDX-License-Identifier: MPL-2.0

package tree_test

import (
	"strings"
	"testing"

	"github.com/Specter099/ssmtree/internal/tree"
)

func TestFilter_MatchingPath(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host", "/app/prod/api/key"), "/app/prod")
	filtered, err := tree.Filter(root, "*/db/*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if _, ok := filtered.Children["db"]; !ok {
		t.Error(`filtered tree missing "db"`)
	}
	if _, ok := filtered.Children["api"]; ok {
		t.Error(`filtered tree kept "api"`)
	}
}

func TestFilter_NoMatchReturnsEmptyRoot(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host"), "/app/prod")
	filtered, err := tree.Filter(root, "*/nonexistent/*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(filtered.Children) != 0 {
		t.Errorf("filtered.Children = %v, want empty", filtered.Children)
	}
	if filtered.Path != root.Path {
		t.Errorf("filtered root path = %q, want %q", filtered.Path, root.Path)
	}
}

func TestFilter_GlobStarCrossesSlash(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host", "/app/prod/api/key"), "/app")
	// '*' matches any run of characters, including '/'.
	filtered, err := tree.Filter(root, "*host*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	db := filtered.Children["prod"].Children["db"]
	if _, ok := db.Children["host"]; !ok {
		t.Error(`filtered tree missing "host"`)
	}
}

func TestFilter_GlobPrefixMatch(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db_host", "/app/prod/db_port", "/app/prod/api_key"), "/app/prod")
	filtered, err := tree.Filter(root, "*/db_*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if _, ok := filtered.Children["db_host"]; !ok {
		t.Error(`filtered tree missing "db_host"`)
	}
	if _, ok := filtered.Children["db_port"]; !ok {
		t.Error(`filtered tree missing "db_port"`)
	}
	if _, ok := filtered.Children["api_key"]; ok {
		t.Error(`filtered tree kept "api_key"`)
	}
}

func TestFilter_PreservesStructure(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host", "/app/prod/db/port"), "/app/prod")
	filtered, err := tree.Filter(root, "*host*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	db, ok := filtered.Children["db"]
	if !ok {
		t.Fatal(`filtered tree missing "db"`)
	}
	if _, ok := db.Children["host"]; !ok {
		t.Error(`db missing "host"`)
	}
	if _, ok := db.Children["port"]; ok {
		t.Error(`db kept "port"`)
	}
}

func TestFilter_NamespaceKeptViaDescendantLosesRecord(t *testing.T) {
	t.Parallel()

	// /app/prod carries a record but only survives because /app/prod/key
	// matches; its own record must be cleared in the output.
	root := tree.Build(mkParams(t, "/app/prod", "/app/prod/key"), "/app")
	filtered, err := tree.Filter(root, "*/key")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	prod, ok := filtered.Children["prod"]
	if !ok {
		t.Fatal(`filtered tree missing "prod"`)
	}
	if prod.Record != nil {
		t.Error("namespace kept via descendant retained its record, want cleared")
	}
	if prod.Children["key"].Record == nil {
		t.Error("matching leaf lost its record")
	}
}

func TestFilter_SelfMatchingNamespaceKeepsRecord(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod", "/app/prod/key"), "/app")
	filtered, err := tree.Filter(root, "*prod*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if filtered.Children["prod"].Record == nil {
		t.Error("self-matching namespace lost its record")
	}
}

func TestFilter_InputUnmodified(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host", "/app/prod/api/key"), "/app/prod")
	before := len(root.Children["api"].Children)

	if _, err := tree.Filter(root, "*/db/*"); err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	if _, ok := root.Children["api"]; !ok {
		t.Fatal("filtering removed a node from the input tree")
	}
	if got := len(root.Children["api"].Children); got != before {
		t.Errorf("input api children = %d, want %d", got, before)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/prod/db/host", "/app/prod/db/port", "/app/prod/api/key"), "/app/prod")
	once, err := tree.Filter(root, "*/db/*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	twice, err := tree.Filter(once, "*/db/*")
	if err != nil {
		t.Fatalf("Filter() second pass error = %v", err)
	}
	if !sameShape(once, twice) {
		t.Error("filtering twice with the same pattern changed the tree")
	}
}

func TestFilter_SurvivingLeavesMatch(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t,
		"/app/prod/db/host",
		"/app/prod/db/port",
		"/app/prod/api/key",
		"/app/staging/db/host",
	), "/")
	filtered, err := tree.Filter(root, "*/db/*")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	for _, p := range filtered.Flatten() {
		if !strings.Contains(p.Path, "/db/") {
			t.Errorf("surviving record %q does not match pattern", p.Path)
		}
	}
	if got := len(filtered.Flatten()); got != 3 {
		t.Errorf("surviving record count = %d, want 3", got)
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	root := tree.Build(mkParams(t, "/app/key"), "/")
	if _, err := tree.Filter(root, "[unclosed"); err == nil {
		t.Error("Filter() with malformed pattern: want error, got nil")
	}
}

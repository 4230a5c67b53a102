// SPDX-License-Identifier: MPL-2.0

package param

import (
	"fmt"
	"regexp"
	"strings"
)

var pathRe = regexp.MustCompile(`^/[a-zA-Z0-9_./-]+$`)

// ValidatePath checks that path looks like a valid store path: it must start
// with '/' and contain only alphanumerics, '.', '_', '-' and '/'. The single
// character "/" is valid and denotes the root.
//
// This is a boundary check performed before the core is invoked; the tree
// builder itself never validates.
func ValidatePath(path string) error {
	if path == "/" {
		return nil
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path must not be empty")
	}
	if !pathRe.MatchString(path) {
		return fmt.Errorf("invalid path %q: paths must start with '/' and contain only alphanumerics, '.', '_', '-', or '/'", path)
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package store

import "regexp"

// AWS error messages can embed account numbers and full resource ARNs.
// Those never belong in terminal output or logs.
var (
	arnRe     = regexp.MustCompile(`arn:[a-z\-]*:[a-zA-Z0-9\-]*:[a-zA-Z0-9\-]*:\d*:[^\s,"')]+`)
	accountRe = regexp.MustCompile(`\b\d{12}\b`)
)

// Scrub redacts account identifiers and resource ARNs from an error
// message before it is surfaced to the caller.
func Scrub(msg string) string {
	msg = arnRe.ReplaceAllString(msg, "arn:***")
	msg = accountRe.ReplaceAllString(msg, "************")
	return msg
}

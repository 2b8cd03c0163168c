// Package referral implements the materialized-path bookkeeping for the
// invitation tree. A user's position is encoded as an integer depth plus a
// ">"-delimited string of ancestor IDs, root first. The graph is a forest by
// construction: an inviter exists before any user it invites, so no cycle
// can form.
package referral

import "strings"

// PathSeparator joins ancestor IDs inside an invitation path. IDs are
// UUIDs, so the separator can never occur inside an ID.
const PathSeparator = ">"

// Position is a node's place in the referral forest.
type Position struct {
	Level int
	Path  string
}

// Root is the position of a seed user with no inviter.
var Root = Position{Level: 0, Path: ""}

// Child derives the position of a user invited by someone at the given
// position with the given ID: one level deeper, with the inviter's ID
// appended to the inviter's own path.
func Child(inviter Position, inviterID string) Position {
	path := inviterID
	if inviter.Path != "" {
		path = inviter.Path + PathSeparator + inviterID
	}
	return Position{Level: inviter.Level + 1, Path: path}
}

// Ancestors splits a path into its ancestor IDs, root first. Empty for
// seed users.
func Ancestors(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// PathContains reports whether id appears as a whole segment of path.
// Matching is delimiter-bounded rather than raw substring so that an ID
// which happens to be a prefix or suffix of another can never produce a
// false positive.
func PathContains(path, id string) bool {
	if path == "" || id == "" {
		return false
	}
	for _, seg := range strings.Split(path, PathSeparator) {
		if seg == id {
			return true
		}
	}
	return false
}

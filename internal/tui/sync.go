package tui

import "time"

// Poll-based whiteboard convergence.
//
// While a project is open, the host polls its server-side whiteboard on a
// fixed interval and offers each fetched value to the checker. The checker
// only lets a value through when the user is not mid-typing, has nothing
// unsaved, and the value is actually new. Polls are tagged with a
// generation; switching projects bumps it, so responses for the previous
// project fall on the floor. This is last-writer-wins: two sessions editing
// the same whiteboard will clobber each other, and that is the deal.

const (
	syncPollInterval = 5000 * time.Millisecond
	typingGuard      = 1000 * time.Millisecond
)

type syncChecker struct {
	gen         int
	lastApplied string
	lastEditAt  time.Time
}

// Reset rebinds the checker to a project whose server whiteboard is value.
// Pending polls for the previous project are invalidated. Returns the
// generation the next poll cycle should carry.
func (c *syncChecker) Reset(value string) int {
	c.gen++
	c.lastApplied = value
	c.lastEditAt = time.Time{}
	return c.gen
}

// NoteEdit records local typing; fetched values are held back until
// typingGuard has passed.
func (c *syncChecker) NoteEdit(now time.Time) {
	c.lastEditAt = now
}

func (c *syncChecker) Gen() int { return c.gen }

// ShouldApply decides whether a fetched whiteboard value may replace the
// local view. dirty is the owning editor's unsaved-changes flag; a dirty
// editor is never overwritten no matter what the server says.
func (c *syncChecker) ShouldApply(gen int, fetched string, dirty bool, now time.Time) bool {
	if gen != c.gen {
		return false
	}
	if !c.lastEditAt.IsZero() && now.Sub(c.lastEditAt) < typingGuard {
		return false
	}
	if dirty {
		return false
	}
	return fetched != c.lastApplied
}

// Applied records that value now backs the local view. Called both after
// applying a fetched value and after a local save lands, so the next poll
// of an unchanged server does nothing.
func (c *syncChecker) Applied(value string) {
	c.lastApplied = value
}

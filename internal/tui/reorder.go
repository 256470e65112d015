package tui

// Optimistic reordering over the prompt list.
//
// The controller keeps two id orders: the mirror the UI renders, and the
// last order the server confirmed. A move rewrites the mirror immediately;
// the host then persists the full mirror and reports back. Failure snaps
// the mirror back to the confirmed order.
//
// Keyboard and pointer reorders go through the same grab/drop state, so a
// keyboard move is exactly a drag with the same source and target.

type reorderController struct {
	mirror    []string
	confirmed []string
	// grabbed is the mirror index currently being carried, -1 when idle.
	grabbed int
}

func newReorderController() reorderController {
	return reorderController{grabbed: -1}
}

// Sync adopts a fresh server-provided order as both mirror and confirmed
// state. Any grab in progress is dropped.
func (c *reorderController) Sync(ids []string) {
	c.mirror = append([]string(nil), ids...)
	c.confirmed = append([]string(nil), ids...)
	c.grabbed = -1
}

func (c *reorderController) IDs() []string  { return c.mirror }
func (c *reorderController) Len() int       { return len(c.mirror) }
func (c *reorderController) Grabbed() int   { return c.grabbed }
func (c *reorderController) Grabbing() bool { return c.grabbed >= 0 }

// Move applies a single-element move to the mirror and returns the full
// order to persist. Same-position and out-of-range moves report ok=false
// and change nothing.
func (c *reorderController) Move(src, dst int) (order []string, ok bool) {
	if src < 0 || src >= len(c.mirror) {
		return nil, false
	}
	dst = clampIndex(dst, len(c.mirror))
	if src == dst {
		return nil, false
	}
	c.mirror = moveID(c.mirror, src, dst)
	return append([]string(nil), c.mirror...), true
}

// Grab starts carrying the row at idx.
func (c *reorderController) Grab(idx int) bool {
	if idx < 0 || idx >= len(c.mirror) {
		return false
	}
	c.grabbed = idx
	return true
}

// MoveGrabbed shifts the carried row by delta within the mirror. The
// pending order stays local until Drop.
func (c *reorderController) MoveGrabbed(delta int) bool {
	if c.grabbed < 0 {
		return false
	}
	dst := clampIndex(c.grabbed+delta, len(c.mirror))
	if dst == c.grabbed {
		return false
	}
	c.mirror = moveID(c.mirror, c.grabbed, dst)
	c.grabbed = dst
	return true
}

// Drop ends the grab. If the mirror differs from the confirmed order it
// returns the order to persist; otherwise the grab was a round trip and
// nothing happens.
func (c *reorderController) Drop() (order []string, ok bool) {
	if c.grabbed < 0 {
		return nil, false
	}
	c.grabbed = -1
	if equalIDs(c.mirror, c.confirmed) {
		return nil, false
	}
	return append([]string(nil), c.mirror...), true
}

// CancelGrab abandons the grab and restores the confirmed order.
func (c *reorderController) CancelGrab() {
	if c.grabbed < 0 {
		return
	}
	c.grabbed = -1
	c.mirror = append([]string(nil), c.confirmed...)
}

// Confirm marks the current mirror as server-confirmed after a successful
// persist.
func (c *reorderController) Confirm() {
	c.confirmed = append([]string(nil), c.mirror...)
}

// Revert restores the confirmed order after a rejected persist and returns
// it so the view can re-render.
func (c *reorderController) Revert() []string {
	c.grabbed = -1
	c.mirror = append([]string(nil), c.confirmed...)
	return c.mirror
}

// moveID removes the element at src and reinserts it at dst. A move, not a
// swap: everything between the two positions shifts by one.
func moveID(ids []string, src, dst int) []string {
	out := make([]string, 0, len(ids))
	out = append(out, ids[:src]...)
	out = append(out, ids[src+1:]...)
	out = append(out[:dst], append([]string{ids[src]}, out[dst:]...)...)
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

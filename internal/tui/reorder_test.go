package tui

import (
	"reflect"
	"testing"
)

func TestMoveID_SingleElementMove(t *testing.T) {
	cases := []struct {
		name     string
		ids      []string
		src, dst int
		want     []string
	}{
		{"front to middle", []string{"A", "B", "C", "D"}, 0, 2, []string{"B", "C", "A", "D"}},
		{"middle to front", []string{"A", "B", "C", "D"}, 2, 0, []string{"C", "A", "B", "D"}},
		{"to the end", []string{"A", "B", "C", "D"}, 1, 3, []string{"A", "C", "D", "B"}},
		{"neighbors", []string{"A", "B"}, 1, 0, []string{"B", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := moveID(tc.ids, tc.src, tc.dst)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("moveID(%v, %d, %d) = %v, want %v", tc.ids, tc.src, tc.dst, got, tc.want)
			}
		})
	}
}

func TestReorder_MoveAndRevert(t *testing.T) {
	c := newReorderController()
	c.Sync([]string{"A", "B", "C", "D"})

	order, ok := c.Move(0, 2)
	if !ok {
		t.Fatalf("Move(0,2) was a no-op")
	}
	want := []string{"B", "C", "A", "D"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("persist order = %v, want %v", order, want)
	}
	if !reflect.DeepEqual(c.IDs(), want) {
		t.Fatalf("mirror = %v, want optimistic %v", c.IDs(), want)
	}

	// Server says no: the view snaps back to the confirmed order.
	got := c.Revert()
	if !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("after revert = %v, want original order", got)
	}

	// Server says yes next time: confirmed order advances.
	order, _ = c.Move(0, 2)
	c.Confirm()
	c.Sync(order)
	if !reflect.DeepEqual(c.IDs(), want) {
		t.Fatalf("after confirm+resync = %v, want %v", c.IDs(), want)
	}
}

func TestReorder_NoOpMoves(t *testing.T) {
	c := newReorderController()
	c.Sync([]string{"A", "B", "C"})

	if _, ok := c.Move(1, 1); ok {
		t.Fatalf("same-position move persisted")
	}
	if _, ok := c.Move(5, 0); ok {
		t.Fatalf("out-of-range source persisted")
	}
	// Destinations clamp instead of failing.
	order, ok := c.Move(0, 99)
	if !ok {
		t.Fatalf("clamped move was a no-op")
	}
	if !reflect.DeepEqual(order, []string{"B", "C", "A"}) {
		t.Fatalf("clamped move = %v, want [B C A]", order)
	}
}

func TestReorder_GrabMoveDrop(t *testing.T) {
	c := newReorderController()
	c.Sync([]string{"A", "B", "C", "D"})

	if !c.Grab(0) {
		t.Fatalf("Grab(0) failed")
	}
	if !c.MoveGrabbed(1) || !c.MoveGrabbed(1) {
		t.Fatalf("MoveGrabbed down twice failed")
	}
	if got := c.Grabbed(); got != 2 {
		t.Fatalf("grabbed index = %d, want 2", got)
	}

	order, ok := c.Drop()
	if !ok {
		t.Fatalf("Drop after movement was a no-op")
	}
	if !reflect.DeepEqual(order, []string{"B", "C", "A", "D"}) {
		t.Fatalf("dropped order = %v, want [B C A D]", order)
	}
	if c.Grabbing() {
		t.Fatalf("still grabbing after drop")
	}
}

func TestReorder_GrabRoundTripAndCancel(t *testing.T) {
	c := newReorderController()
	c.Sync([]string{"A", "B", "C"})

	// Down then up again: net zero, nothing to persist.
	c.Grab(0)
	c.MoveGrabbed(1)
	c.MoveGrabbed(-1)
	if _, ok := c.Drop(); ok {
		t.Fatalf("round-trip grab persisted an unchanged order")
	}

	// Cancel mid-carry restores the confirmed order.
	c.Grab(2)
	c.MoveGrabbed(-2)
	c.CancelGrab()
	if !reflect.DeepEqual(c.IDs(), []string{"A", "B", "C"}) {
		t.Fatalf("after cancel = %v, want confirmed order", c.IDs())
	}
	if c.Grabbing() {
		t.Fatalf("still grabbing after cancel")
	}

	// Moves clamp at the edges while carried.
	c.Grab(0)
	if c.MoveGrabbed(-1) {
		t.Fatalf("moved above the top of the list")
	}
	c.CancelGrab()
}

func TestReorder_SyncDropsGrab(t *testing.T) {
	c := newReorderController()
	c.Sync([]string{"A", "B"})
	c.Grab(0)

	// A refresh landing mid-carry adopts the server's order outright.
	c.Sync([]string{"B", "A"})
	if c.Grabbing() {
		t.Fatalf("grab survived a resync")
	}
	if !reflect.DeepEqual(c.IDs(), []string{"B", "A"}) {
		t.Fatalf("mirror = %v, want resynced order", c.IDs())
	}
}

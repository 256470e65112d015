package tui

import "time"

// Editable fields and their autosave lifecycle.
//
// Every editor (the prompt editor, the whiteboard) owns one saveController.
// The controller is pure: it never touches the network or timers itself.
// Instead it tells the host when to schedule a delayed tick and when to
// issue a persist call, and the host feeds ticks and results back in.
// Generation counters make cancellation implicit: a tick or a result
// carrying a stale generation is simply ignored.

const (
	autosaveDelay = 2000 * time.Millisecond
	// A lone status toggle is saved immediately; only field edits debounce.
)

type saveState int

const (
	saveClean saveState = iota
	saveDirty
	saveSaving
)

// editFields is the value-comparable snapshot of everything an editor can
// change. Unused fields stay zero (the whiteboard only ever sets Content).
type editFields struct {
	Name      string
	Status    string
	Content   string
	ProjectID string
}

// saveRequest asks the host to persist. EntityID is empty for an entity
// that has never been saved, in which case the host should create it.
type saveRequest struct {
	BindGen  int
	EntityID string
	Fields   editFields
}

type saveController struct {
	entityID string
	baseline editFields
	fields   editFields
	// inflight is the snapshot handed to the host by the last save
	// request, so a success can tell "nothing typed since" apart from
	// "newer edits pending".
	inflight editFields
	state    saveState

	// bindGen identifies the current binding; results from an earlier
	// binding must not touch this one.
	bindGen int
	// debounceGen identifies the newest scheduled tick; older ticks are
	// dead on arrival.
	debounceGen int
}

// Bind points the controller at an entity and its server-confirmed state.
// Any pending debounce and any in-flight save outcome are abandoned.
func (c *saveController) Bind(entityID string, fields editFields) {
	c.entityID = entityID
	c.baseline = fields
	c.fields = fields
	c.state = saveClean
	c.bindGen++
	c.debounceGen++
}

// Edit records the editor's current field values. It reports the debounce
// generation to schedule a tick for, or ok=false when the values match the
// baseline and nothing needs saving. Each call invalidates earlier ticks,
// so only the last surviving timer fires.
func (c *saveController) Edit(fields editFields) (gen int, ok bool) {
	c.fields = fields
	c.debounceGen++
	if fields == c.baseline {
		if c.state == saveDirty {
			c.state = saveClean
		}
		return 0, false
	}
	if c.state != saveSaving {
		c.state = saveDirty
	}
	return c.debounceGen, true
}

// TimerFired handles a debounce tick. Stale generations and unchanged
// fields produce no request.
func (c *saveController) TimerFired(gen int) (saveRequest, bool) {
	if gen != c.debounceGen {
		return saveRequest{}, false
	}
	return c.startSave()
}

// SaveNow is the manual trigger. It cancels any pending tick and persists
// immediately; an already-clean entity is a no-op.
func (c *saveController) SaveNow() (saveRequest, bool) {
	c.debounceGen++
	return c.startSave()
}

func (c *saveController) startSave() (saveRequest, bool) {
	if c.state == saveSaving {
		return saveRequest{}, false
	}
	if c.fields == c.baseline {
		c.state = saveClean
		return saveRequest{}, false
	}
	c.state = saveSaving
	c.inflight = c.fields
	return saveRequest{BindGen: c.bindGen, EntityID: c.entityID, Fields: c.fields}, true
}

// SaveResult applies the outcome of a persist call. A result tagged with a
// previous binding's generation is dropped (the entity it belonged to is no
// longer on screen). On success the confirmed baseline moves to the saved
// values; if nothing was typed since the request went out, the local fields
// adopt them too (this is how a server-derived name reaches the editor).
// Edits made while the save was in flight keep the controller dirty. On
// failure the controller stays dirty so the next edit or manual save
// retries.
func (c *saveController) SaveResult(bindGen int, savedID string, saved editFields, err error) bool {
	if bindGen != c.bindGen {
		return false
	}
	if err != nil {
		if c.state == saveSaving {
			c.state = saveDirty
		}
		return true
	}
	if c.entityID == "" {
		c.entityID = savedID
	}
	c.baseline = saved
	if c.fields == c.inflight {
		c.fields = saved
	}
	if c.fields == c.baseline {
		c.state = saveClean
	} else {
		c.state = saveDirty
	}
	return true
}

func (c *saveController) EntityID() string   { return c.entityID }
func (c *saveController) BindGen() int       { return c.bindGen }
func (c *saveController) Fields() editFields { return c.fields }
func (c *saveController) Dirty() bool        { return c.state != saveClean }
func (c *saveController) Saving() bool       { return c.state == saveSaving }

// statusLabel is what the status bar shows for this editor.
func (c *saveController) statusLabel() string {
	switch c.state {
	case saveSaving:
		return "saving..."
	case saveDirty:
		return "unsaved changes"
	default:
		return "saved"
	}
}

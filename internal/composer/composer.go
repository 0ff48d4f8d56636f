// Package composer owns the user-facing selection state: the current
// document selection, the transient IME composing region, and the style
// attributions applied to the next insertion.
//
// Selection changes through the composer are the only legal way callers
// observe or set cursor state; the engine never reaches into rendering
// state to determine what is selected.
package composer

import (
	"sync"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/notify"
)

// Composer holds the current selection plus transient input-composition
// state. A nil selection is a valid state: nothing is selected.
// All methods are thread-safe.
type Composer struct {
	mu        sync.RWMutex
	selection *document.Selection
	composing *document.Range
	styles    []attrtext.Attribution
	notifier  *notify.Notifier
}

// New creates a composer with no selection.
func New() *Composer {
	return &Composer{notifier: notify.New()}
}

// Subscribe registers an observer for selection changes.
func (c *Composer) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// Notifier exposes the composer's notifier for transaction batching.
func (c *Composer) Notifier() *notify.Notifier {
	return c.notifier
}

// Selection returns the current selection. ok is false when nothing is
// selected.
func (c *Composer) Selection() (document.Selection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selection == nil {
		return document.Selection{}, false
	}
	return *c.selection, true
}

// SetSelection replaces the current selection and notifies observers.
// Setting an identical selection is a no-op and does not notify.
func (c *Composer) SetSelection(sel document.Selection) {
	c.mu.Lock()
	if c.selection != nil && c.selection.Equal(sel) {
		c.mu.Unlock()
		return
	}
	c.selection = &sel
	c.mu.Unlock()

	c.notifier.Notify(notify.Change{Type: notify.ChangeSelection})
}

// ClearSelection removes the current selection and notifies observers.
func (c *Composer) ClearSelection() {
	c.mu.Lock()
	if c.selection == nil {
		c.mu.Unlock()
		return
	}
	c.selection = nil
	c.composing = nil
	c.mu.Unlock()

	c.notifier.Notify(notify.Change{Type: notify.ChangeSelection})
}

// HasSelection returns true when a selection exists.
func (c *Composer) HasSelection() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection != nil
}

// ComposingRegion returns the pending IME composing range, if any. The
// engine treats the region as opaque beyond its extent.
func (c *Composer) ComposingRegion() (document.Range, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.composing == nil {
		return document.Range{}, false
	}
	return *c.composing, true
}

// SetComposingRegion records a pending multi-keystroke composition range.
func (c *Composer) SetComposingRegion(r document.Range) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = &r
}

// ClearComposingRegion ends the pending composition.
func (c *Composer) ClearComposingRegion() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = nil
}

// ActiveStyles returns the attributions applied to the next insertion.
func (c *Composer) ActiveStyles() []attrtext.Attribution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]attrtext.Attribution, len(c.styles))
	copy(out, c.styles)
	return out
}

// SetActiveStyles replaces the insertion styles.
func (c *Composer) SetActiveStyles(styles []attrtext.Attribution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.styles = make([]attrtext.Attribution, len(styles))
	copy(c.styles, styles)
}

// ToggleActiveStyle adds the attribution to the insertion styles, or
// removes it when already present.
func (c *Composer) ToggleActiveStyle(a attrtext.Attribution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.styles {
		if s.Equal(a) {
			c.styles = append(c.styles[:i], c.styles[i+1:]...)
			return
		}
	}
	c.styles = append(c.styles, a)
}

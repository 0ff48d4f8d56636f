// Package notify provides change notification for engine state.
//
// The notify package implements an observer pattern that allows components
// to subscribe to document, node, and selection changes. Changes carry no
// payload beyond what changed; observers re-read the state they care about.
//
// A Notifier can be held while a transaction applies several mutations, so
// observers receive one coalesced batch after the transaction commits
// instead of one callback per primitive step.
package notify

import (
	"sync"
)

// ChangeType represents the kind of state change.
type ChangeType int

const (
	// ChangeNodeInserted indicates a node was added to the document.
	ChangeNodeInserted ChangeType = iota

	// ChangeNodeRemoved indicates a node was removed from the document.
	ChangeNodeRemoved

	// ChangeNodeReplaced indicates a node was swapped for another node.
	ChangeNodeReplaced

	// ChangeNodeContent indicates a node's content changed in place.
	ChangeNodeContent

	// ChangeSelection indicates the composer's selection changed.
	ChangeSelection

	// ChangeReload indicates external state (e.g. configuration) was
	// reloaded wholesale.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeNodeInserted:
		return "node-inserted"
	case ChangeNodeRemoved:
		return "node-removed"
	case ChangeNodeReplaced:
		return "node-replaced"
	case ChangeNodeContent:
		return "node-content"
	case ChangeSelection:
		return "selection"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a single state change event.
type Change struct {
	// Type is the kind of change.
	Type ChangeType

	// NodeID identifies the affected node. Empty for changes that are
	// not scoped to a single node.
	NodeID string

	// Source identifies where the change came from.
	Source string
}

// Observer is called after state changes commit.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions and delivery.
// All methods are safe for concurrent use.
type Notifier struct {
	mu        sync.Mutex
	observers map[uint64]Observer
	nextID    uint64

	// Hold depth; while > 0 changes are buffered instead of delivered.
	holds   int
	pending []Change
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// ObserverCount returns the number of active subscriptions.
func (n *Notifier) ObserverCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}

// Notify delivers a change to all observers synchronously. If the notifier
// is held, the change is buffered until Release.
func (n *Notifier) Notify(change Change) {
	n.mu.Lock()
	if n.holds > 0 {
		n.pending = append(n.pending, change)
		n.mu.Unlock()
		return
	}
	observers := n.snapshotObservers()
	n.mu.Unlock()

	for _, obs := range observers {
		obs(change)
	}
}

// Hold suspends delivery. Calls nest; delivery resumes when every Hold has
// a matching Release.
func (n *Notifier) Hold() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.holds++
}

// Release ends one Hold. When the final hold is released, buffered changes
// are delivered in order with consecutive duplicates coalesced.
func (n *Notifier) Release() {
	n.mu.Lock()
	if n.holds > 0 {
		n.holds--
	}
	if n.holds > 0 || len(n.pending) == 0 {
		n.mu.Unlock()
		return
	}

	changes := coalesce(n.pending)
	n.pending = nil
	observers := n.snapshotObservers()
	n.mu.Unlock()

	for _, change := range changes {
		for _, obs := range observers {
			obs(change)
		}
	}
}

// snapshotObservers copies the observer set so delivery happens outside the
// lock. Caller must hold n.mu.
func (n *Notifier) snapshotObservers() []Observer {
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	return observers
}

// coalesce drops exact duplicates while preserving first-seen order.
func coalesce(changes []Change) []Change {
	if len(changes) <= 1 {
		return changes
	}

	seen := make(map[Change]struct{}, len(changes))
	out := changes[:0]
	for _, c := range changes {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

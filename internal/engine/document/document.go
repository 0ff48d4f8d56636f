package document

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/node"
	"github.com/dshills/quill/internal/engine/notify"
)

// Errors returned by document operations.
var (
	ErrDuplicateNodeID = errors.New("duplicate node id")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNodeNotFound    = errors.New("node not found")
	ErrNotTextNode     = errors.New("node does not carry text")
	ErrPositionResolve = errors.New("position does not resolve to a document node")
	ErrNilNode         = errors.New("nil node")
)

// Document is an ordered sequence of nodes with stable identity. It lives
// for the editing session and is mutated in place; every structural
// mutation notifies observers synchronously after the mutation commits, so
// observers always see a consistent state.
//
// All methods are thread-safe, though the engine assumes a single writer.
type Document struct {
	mu       sync.RWMutex
	nodes    []node.Node
	index    map[node.ID]int
	notifier *notify.Notifier
}

// New creates a document from the given nodes. Node IDs must be unique.
func New(nodes ...node.Node) (*Document, error) {
	d := &Document{
		index:    make(map[node.ID]int, len(nodes)),
		notifier: notify.New(),
	}
	for _, n := range nodes {
		if n == nil {
			return nil, ErrNilNode
		}
		if _, dup := d.index[n.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID())
		}
		d.index[n.ID()] = len(d.nodes)
		d.nodes = append(d.nodes, n)
	}
	return d, nil
}

// Subscribe registers an observer for document changes.
func (d *Document) Subscribe(observer notify.Observer) *notify.Subscription {
	return d.notifier.Subscribe(observer)
}

// Notifier exposes the document's notifier so a transaction can hold
// delivery while it applies several primitive mutations.
func (d *Document) Notifier() *notify.Notifier {
	return d.notifier
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// GetNodeByID returns the node with the given ID, or nil when absent.
func (d *Document) GetNodeByID(id node.ID) node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok {
		return nil
	}
	return d.nodes[i]
}

// GetNodeIndexByID returns the node's position in the ordered sequence,
// or -1 when absent.
func (d *Document) GetNodeIndexByID(id node.ID) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok {
		return -1
	}
	return i
}

// GetNodeAt returns the node at the given index, or nil when out of range.
func (d *Document) GetNodeAt(index int) node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.nodes) {
		return nil
	}
	return d.nodes[index]
}

// GetNodeBefore returns the node immediately upstream of the given ID, or
// nil at the document start or when the ID is absent.
func (d *Document) GetNodeBefore(id node.ID) node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok || i == 0 {
		return nil
	}
	return d.nodes[i-1]
}

// GetNodeAfter returns the node immediately downstream of the given ID, or
// nil at the document end or when the ID is absent.
func (d *Document) GetNodeAfter(id node.ID) node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok || i == len(d.nodes)-1 {
		return nil
	}
	return d.nodes[i+1]
}

// Nodes returns a copy of the ordered node sequence.
func (d *Document) Nodes() []node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]node.Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// InsertNodeAt inserts a node at the given index. Fails atomically when
// the index is out of range or the ID already exists.
func (d *Document) InsertNodeAt(index int, n node.Node) error {
	if n == nil {
		return ErrNilNode
	}

	d.mu.Lock()
	if index < 0 || index > len(d.nodes) {
		d.mu.Unlock()
		return ErrIndexOutOfRange
	}
	if _, dup := d.index[n.ID()]; dup {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID())
	}

	d.nodes = append(d.nodes, nil)
	copy(d.nodes[index+1:], d.nodes[index:])
	d.nodes[index] = n
	d.reindexFrom(index)
	d.mu.Unlock()

	d.notifier.Notify(notify.Change{Type: notify.ChangeNodeInserted, NodeID: string(n.ID())})
	return nil
}

// InsertNodeAfter inserts a node immediately downstream of an existing
// node. A missing existing ID is a no-op miss, reported as ErrNodeNotFound.
func (d *Document) InsertNodeAfter(existing node.ID, n node.Node) error {
	d.mu.RLock()
	i, ok := d.index[existing]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, existing)
	}
	return d.InsertNodeAt(i+1, n)
}

// InsertNodeBefore inserts a node immediately upstream of an existing node.
func (d *Document) InsertNodeBefore(existing node.ID, n node.Node) error {
	d.mu.RLock()
	i, ok := d.index[existing]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, existing)
	}
	return d.InsertNodeAt(i, n)
}

// DeleteNode removes the node with the given ID. Returns false when the ID
// is absent; a miss is "nothing to do", not an error.
func (d *Document) DeleteNode(id node.ID) bool {
	d.mu.Lock()
	i, ok := d.index[id]
	if !ok {
		d.mu.Unlock()
		return false
	}

	d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
	delete(d.index, id)
	d.reindexFrom(i)
	d.mu.Unlock()

	d.notifier.Notify(notify.Change{Type: notify.ChangeNodeRemoved, NodeID: string(id)})
	return true
}

// ReplaceNode swaps the node with the given ID for a new node, keeping its
// position in the sequence.
func (d *Document) ReplaceNode(oldID node.ID, n node.Node) error {
	if n == nil {
		return ErrNilNode
	}

	d.mu.Lock()
	i, ok := d.index[oldID]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotFound, oldID)
	}
	if _, dup := d.index[n.ID()]; dup && n.ID() != oldID {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID())
	}

	d.nodes[i] = n
	delete(d.index, oldID)
	d.index[n.ID()] = i
	d.mu.Unlock()

	d.notifier.Notify(notify.Change{Type: notify.ChangeNodeReplaced, NodeID: string(n.ID())})
	return nil
}

// ReplaceNodeText swaps the attributed text of a text-bearing node and
// fires a content-change notification. This is the only sanctioned way to
// mutate node text, so "text changed" fires exactly once per logical edit.
func (d *Document) ReplaceNodeText(id node.ID, text attrtext.Text) error {
	d.mu.Lock()
	i, ok := d.index[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	tn, ok := d.nodes[i].(node.TextBearing)
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotTextNode, id)
	}
	tn.SetText(text)
	d.mu.Unlock()

	d.notifier.Notify(notify.Change{Type: notify.ChangeNodeContent, NodeID: string(id)})
	return nil
}

// GetNodesInside returns the ordered nodes whose document-order span
// intersects the range between the two positions, inclusive of
// partially-covered boundary nodes.
func (d *Document) GetNodesInside(a, b Position) []node.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ia, oka := d.index[a.NodeID]
	ib, okb := d.index[b.NodeID]
	if !oka || !okb {
		return nil
	}
	if ia > ib {
		ia, ib = ib, ia
	}

	out := make([]node.Node, 0, ib-ia+1)
	out = append(out, d.nodes[ia:ib+1]...)
	return out
}

// GetRangeBetween normalizes two positions into document order: the range
// start is whichever position's node comes first in the sequence, with
// intra-node ties broken by the node's own upstream ordering.
func (d *Document) GetRangeBetween(a, b Position) (Range, error) {
	d.mu.RLock()
	ia, oka := d.index[a.NodeID]
	ib, okb := d.index[b.NodeID]
	var n node.Node
	if oka {
		n = d.nodes[ia]
	}
	d.mu.RUnlock()

	if !oka || !okb {
		return Range{}, ErrPositionResolve
	}

	if ia < ib {
		return Range{Start: a, End: b}, nil
	}
	if ib < ia {
		return Range{Start: b, End: a}, nil
	}

	// Same node: order by the node's own position algebra.
	up, err := n.SelectUpstreamPosition(a.NodePosition, b.NodePosition)
	if err != nil {
		return Range{}, err
	}
	if up.Equal(a.NodePosition) {
		return Range{Start: a, End: b}, nil
	}
	return Range{Start: b, End: a}, nil
}

// reindexFrom rebuilds the id index for nodes at or after the given
// position. Caller must hold d.mu.
func (d *Document) reindexFrom(start int) {
	for i := start; i < len(d.nodes); i++ {
		d.index[d.nodes[i].ID()] = i
	}
}

package collab

import (
	"sort"
	"sync"
)

// Node is the replicated shape of one placed content item. It mirrors the
// durable canvas node but is flattened for the wire and carries authorship
// stamps.
type Node struct {
	ID        string  `json:"id"`
	ContentID string  `json:"contentId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ZoneID    string  `json:"zoneId,omitempty"`
	Color     string  `json:"color,omitempty"`

	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"` // unix milliseconds
	EditedBy  string `json:"editedBy,omitempty"`
	EditedAt  int64  `json:"editedAt,omitempty"`
}

// Stamp orders concurrent writes: a Lamport counter with the actor id as
// deterministic tie-break.
type Stamp struct {
	Counter uint64 `json:"counter"`
	Actor   string `json:"actor"`
}

// Less reports whether s orders strictly before other.
func (s Stamp) Less(other Stamp) bool {
	if s.Counter != other.Counter {
		return s.Counter < other.Counter
	}
	return s.Actor < other.Actor
}

// Op kinds.
const (
	OpPut    = "put"    // insert or whole-node replace
	OpDelete = "delete" // tombstone
	OpMeta   = "meta"   // metadata key write
)

// Op is one replicated mutation. Ops commute: applying any set of ops in
// any order, any number of times, yields the same document.
type Op struct {
	Kind  string `json:"kind"`
	Stamp Stamp  `json:"stamp"`

	Node  *Node  `json:"node,omitempty"`  // put
	ID    string `json:"id,omitempty"`    // delete
	Key   string `json:"key,omitempty"`   // meta
	Value string `json:"value,omitempty"` // meta
}

// nodeRecord is the LWW register behind one node id.
type nodeRecord struct {
	Node    Node  `json:"node"`
	Stamp   Stamp `json:"stamp"`
	Deleted bool  `json:"deleted"`
}

type metaRecord struct {
	Value string `json:"value"`
	Stamp Stamp  `json:"stamp"`
}

// State is a full snapshot of a document's registers, used to bootstrap
// joining replicas and to resync after a partition. Merging a State is
// equivalent to applying every op that produced it.
type State struct {
	Nodes map[string]nodeRecord `json:"nodes"`
	Meta  map[string]metaRecord `json:"meta"`
}

// Document is one replica of the shared canvas state. All methods are safe
// for concurrent use.
type Document struct {
	mu    sync.Mutex
	actor string
	clock uint64
	nodes map[string]nodeRecord
	meta  map[string]metaRecord
}

// NewDocument creates an empty replica owned by the given actor id.
func NewDocument(actor string) *Document {
	return &Document{
		actor: actor,
		nodes: make(map[string]nodeRecord),
		meta:  make(map[string]metaRecord),
	}
}

// next advances the Lamport clock for a local write.
func (d *Document) next() Stamp {
	d.clock++
	return Stamp{Counter: d.clock, Actor: d.actor}
}

// witness moves the clock past a remote stamp so later local writes order
// after everything this replica has seen.
func (d *Document) witness(s Stamp) {
	if s.Counter > d.clock {
		d.clock = s.Counter
	}
}

// Put inserts or replaces a node locally and returns the op to broadcast.
// Replacement is structural: the whole node value is written, not a field
// patch.
func (d *Document) Put(n Node) Op {
	d.mu.Lock()
	defer d.mu.Unlock()

	stamp := d.next()
	d.nodes[n.ID] = nodeRecord{Node: n, Stamp: stamp}
	return Op{Kind: OpPut, Stamp: stamp, Node: &n}
}

// Delete tombstones a node locally and returns the op to broadcast.
// Deleting an unknown id still produces a tombstone, which protects
// against a concurrent insert racing the delete.
func (d *Document) Delete(id string) Op {
	d.mu.Lock()
	defer d.mu.Unlock()

	stamp := d.next()
	rec := d.nodes[id]
	rec.Stamp = stamp
	rec.Deleted = true
	rec.Node.ID = id
	d.nodes[id] = rec
	return Op{Kind: OpDelete, Stamp: stamp, ID: id}
}

// SetMeta writes a metadata key locally and returns the op to broadcast.
func (d *Document) SetMeta(key, value string) Op {
	d.mu.Lock()
	defer d.mu.Unlock()

	stamp := d.next()
	d.meta[key] = metaRecord{Value: value, Stamp: stamp}
	return Op{Kind: OpMeta, Stamp: stamp, Key: key, Value: value}
}

// Apply merges remote ops into the replica. It reports whether any
// register actually changed, so callers can skip redundant re-renders.
func (d *Document) Apply(ops []Op) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	changed := false
	for _, op := range ops {
		d.witness(op.Stamp)
		switch op.Kind {
		case OpPut:
			if op.Node == nil {
				continue
			}
			if d.mergeNode(nodeRecord{Node: *op.Node, Stamp: op.Stamp}) {
				changed = true
			}
		case OpDelete:
			rec := nodeRecord{Stamp: op.Stamp, Deleted: true}
			rec.Node.ID = op.ID
			if d.mergeNode(rec) {
				changed = true
			}
		case OpMeta:
			cur, ok := d.meta[op.Key]
			if !ok || cur.Stamp.Less(op.Stamp) {
				d.meta[op.Key] = metaRecord{Value: op.Value, Stamp: op.Stamp}
				changed = true
			}
		}
	}
	return changed
}

// mergeNode keeps the register with the greater stamp. Equal stamps mean
// the same write delivered twice; that is a no-op.
func (d *Document) mergeNode(in nodeRecord) bool {
	cur, ok := d.nodes[in.Node.ID]
	if ok && !cur.Stamp.Less(in.Stamp) {
		return false
	}
	d.nodes[in.Node.ID] = in
	return true
}

// Merge folds a full remote state into the replica. Used when (re)joining
// a room. Reports whether anything changed.
func (d *Document) Merge(s State) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	changed := false
	for _, rec := range s.Nodes {
		d.witness(rec.Stamp)
		if d.mergeNode(rec) {
			changed = true
		}
	}
	for k, rec := range s.Meta {
		d.witness(rec.Stamp)
		cur, ok := d.meta[k]
		if !ok || cur.Stamp.Less(rec.Stamp) {
			d.meta[k] = rec
			changed = true
		}
	}
	return changed
}

// Snapshot returns a copy of the full register state.
func (d *Document) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := State{
		Nodes: make(map[string]nodeRecord, len(d.nodes)),
		Meta:  make(map[string]metaRecord, len(d.meta)),
	}
	for k, v := range d.nodes {
		s.Nodes[k] = v
	}
	for k, v := range d.meta {
		s.Meta[k] = v
	}
	return s
}

// Nodes returns the live (non-tombstoned) nodes ordered by creation time,
// with the node id as tie-break. The order is stable under concurrent
// inserts on every replica.
func (d *Document) Nodes() []Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Node, 0, len(d.nodes))
	for _, rec := range d.nodes {
		if !rec.Deleted {
			out = append(out, rec.Node)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Meta returns the value for a metadata key.
func (d *Document) Meta(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.meta[key].Value
}

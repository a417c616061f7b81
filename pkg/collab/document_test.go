package collab

import (
	"testing"
)

func TestDocumentConvergesRegardlessOfOrder(t *testing.T) {
	a := NewDocument("a")
	b := NewDocument("b")

	opsA := []Op{
		a.Put(Node{ID: "n1", ContentID: "c1", X: 1, CreatedAt: 10}),
		a.Put(Node{ID: "n2", ContentID: "c2", X: 2, CreatedAt: 20}),
	}
	opsB := []Op{
		b.Put(Node{ID: "n3", ContentID: "c3", X: 3, CreatedAt: 30}),
		b.Delete("n1"),
	}

	// Deliver in opposite orders to two fresh replicas.
	r1 := NewDocument("r1")
	r1.Apply(opsA)
	r1.Apply(opsB)

	r2 := NewDocument("r2")
	r2.Apply(opsB)
	r2.Apply(opsA)

	n1, n2 := r1.Nodes(), r2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("replica sizes differ: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i] != n2[i] {
			t.Errorf("node %d differs: %+v vs %+v", i, n1[i], n2[i])
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	src := NewDocument("src")
	ops := []Op{
		src.Put(Node{ID: "n1", ContentID: "c1"}),
		src.SetMeta("name", "sprint board"),
	}

	d := NewDocument("d")
	if !d.Apply(ops) {
		t.Fatal("first delivery reported no change")
	}
	if d.Apply(ops) {
		t.Error("duplicate delivery reported a change")
	}
	if got := len(d.Nodes()); got != 1 {
		t.Errorf("nodes = %d, want 1", got)
	}
	if got := d.Meta("name"); got != "sprint board" {
		t.Errorf("meta = %q, want %q", got, "sprint board")
	}
}

func TestDeleteTombstoneBeatsStalePut(t *testing.T) {
	a := NewDocument("a")
	put := a.Put(Node{ID: "n1", ContentID: "c1"})

	b := NewDocument("b")
	b.Apply([]Op{put})
	del := b.Delete("n1")

	// The delete was witnessed after the put, so its stamp is greater.
	// Delivering the stale put again must not resurrect the node.
	c := NewDocument("c")
	c.Apply([]Op{del})
	c.Apply([]Op{put})

	if got := len(c.Nodes()); got != 0 {
		t.Errorf("nodes after stale put = %d, want 0", got)
	}
}

func TestDeleteUnknownIDBlocksConcurrentInsert(t *testing.T) {
	a := NewDocument("a")
	a.clock = 5 // a has seen more history than b
	del := a.Delete("n1")

	b := NewDocument("b")
	put := b.Put(Node{ID: "n1", ContentID: "c1"})

	d := NewDocument("d")
	d.Apply([]Op{put, del})

	if got := len(d.Nodes()); got != 0 {
		t.Errorf("nodes = %d, want 0 (tombstone should win)", got)
	}
}

func TestEqualCountersTieBreakOnActor(t *testing.T) {
	// Both actors write the same register at counter 1; the greater actor
	// id must win on every replica.
	a := NewDocument("aaa")
	b := NewDocument("zzz")
	opA := a.Put(Node{ID: "n1", ContentID: "from-a"})
	opB := b.Put(Node{ID: "n1", ContentID: "from-z"})

	r1 := NewDocument("r1")
	r1.Apply([]Op{opA, opB})
	r2 := NewDocument("r2")
	r2.Apply([]Op{opB, opA})

	for _, d := range []*Document{r1, r2} {
		nodes := d.Nodes()
		if len(nodes) != 1 || nodes[0].ContentID != "from-z" {
			t.Errorf("winner = %+v, want content from-z", nodes)
		}
	}
}

func TestMetaLastWriterWins(t *testing.T) {
	a := NewDocument("a")
	first := a.SetMeta("name", "draft")
	second := a.SetMeta("name", "final")

	d := NewDocument("d")
	d.Apply([]Op{second, first})
	if got := d.Meta("name"); got != "final" {
		t.Errorf("meta = %q, want %q", got, "final")
	}
}

func TestMergeStateEqualsApplyingOps(t *testing.T) {
	src := NewDocument("src")
	ops := []Op{
		src.Put(Node{ID: "n1", ContentID: "c1", CreatedAt: 1}),
		src.Put(Node{ID: "n2", ContentID: "c2", CreatedAt: 2}),
		src.Delete("n1"),
		src.SetMeta("template", "swot"),
	}

	byOps := NewDocument("x")
	byOps.Apply(ops)

	byState := NewDocument("y")
	if !byState.Merge(src.Snapshot()) {
		t.Fatal("merge reported no change")
	}
	if byState.Merge(src.Snapshot()) {
		t.Error("second merge reported a change")
	}

	a, b := byOps.Nodes(), byState.Nodes()
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Errorf("state merge diverged from ops: %+v vs %+v", a, b)
	}
	if byState.Meta("template") != "swot" {
		t.Errorf("meta = %q, want swot", byState.Meta("template"))
	}
}

func TestMergeAdvancesClockPastRemoteWrites(t *testing.T) {
	remote := NewDocument("remote")
	for i := 0; i < 10; i++ {
		remote.Put(Node{ID: "n", ContentID: "c"})
	}

	local := NewDocument("local")
	local.Merge(remote.Snapshot())

	// A local write after the merge must order after everything seen.
	op := local.Put(Node{ID: "n", ContentID: "local-edit"})
	if op.Stamp.Counter <= 10 {
		t.Errorf("counter = %d, want > 10", op.Stamp.Counter)
	}

	remote.Apply([]Op{op})
	nodes := remote.Nodes()
	if len(nodes) != 1 || nodes[0].ContentID != "local-edit" {
		t.Errorf("remote nodes = %+v, want local-edit to win", nodes)
	}
}

func TestNodesOrderedByCreationThenID(t *testing.T) {
	d := NewDocument("d")
	d.Put(Node{ID: "b", CreatedAt: 100})
	d.Put(Node{ID: "a", CreatedAt: 100})
	d.Put(Node{ID: "z", CreatedAt: 50})

	got := d.Nodes()
	want := []string{"z", "a", "b"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("nodes[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := NewDocument("d")
	d.Put(Node{ID: "n1", ContentID: "c1"})

	s := d.Snapshot()
	s.Nodes["n1"] = nodeRecord{Deleted: true, Stamp: Stamp{Counter: 99}}

	if len(d.Nodes()) != 1 {
		t.Error("mutating a snapshot affected the document")
	}
}

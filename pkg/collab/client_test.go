package collab

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

func TestRoomURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		room    string
		want    string
		wantErr bool
	}{
		{name: "http", base: "http://relay.local:8787", room: "abc", want: "ws://relay.local:8787/rooms/abc"},
		{name: "https", base: "https://relay.local", room: "abc", want: "wss://relay.local/rooms/abc"},
		{name: "ws passthrough", base: "ws://relay.local", room: "abc", want: "ws://relay.local/rooms/abc"},
		{name: "trailing slash", base: "http://relay.local/", room: "abc", want: "ws://relay.local/rooms/abc"},
		{name: "escapes room id", base: "http://relay.local", room: "a b", want: "ws://relay.local/rooms/a%20b"},
		{name: "bad scheme", base: "ftp://relay.local", room: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roomURL(tt.base, tt.room)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("roomURL: %v", err)
			}
			if got != tt.want {
				t.Errorf("url = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOfflineEditsStayInReplica(t *testing.T) {
	c := newTestClient(t, "http://relay.invalid")

	n := c.AddNode(Node{ContentID: "c1", X: 4, Y: 5})
	if n.ID == "" {
		t.Fatal("AddNode did not assign an id")
	}
	if n.CreatedBy != c.Self().ID || n.CreatedAt == 0 {
		t.Errorf("authorship stamps missing: %+v", n)
	}

	if !c.MoveNode(n.ID, 9, 9) {
		t.Fatal("MoveNode reported unknown node")
	}
	nodes := c.Nodes()
	if len(nodes) != 1 || nodes[0].X != 9 || nodes[0].Y != 9 {
		t.Errorf("nodes = %+v, want one node at (9,9)", nodes)
	}
	if nodes[0].EditedBy != c.Self().ID {
		t.Errorf("EditedBy = %q, want %q", nodes[0].EditedBy, c.Self().ID)
	}

	if c.MoveNode("missing", 0, 0) {
		t.Error("MoveNode on unknown id reported success")
	}

	c.RemoveNode(n.ID)
	if got := len(c.Nodes()); got != 0 {
		t.Errorf("nodes after remove = %d, want 0", got)
	}
}

func TestClientExchangesStateOnConnect(t *testing.T) {
	hello := make(chan Envelope, 1)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Errorf("read hello: %v", err)
			return
		}
		hello <- env

		// Reply with a merged state carrying one extra node.
		peer := NewDocument("peer")
		peer.Merge(*env.State)
		peer.Put(Node{ID: "remote", ContentID: "r1", CreatedAt: 1})
		state := peer.Snapshot()
		if err := conn.WriteJSON(Envelope{Type: MsgState, State: &state}); err != nil {
			return
		}
		conn.WriteJSON(Envelope{Type: MsgPresence, Presence: []Participant{
			{ID: "peer", Name: "peer", Color: "#ff0000"},
		}})

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.AddNode(Node{ID: "local", ContentID: "l1"})

	changed := make(chan struct{}, 4)
	c.OnChange(func() { changed <- struct{}{} })
	presence := make(chan []Participant, 1)
	c.OnPresence(func(ps []Participant) { presence <- ps })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Connect(ctx)
	defer c.Close()

	env := waitFor(t, hello, "hello frame")
	if env.Type != MsgHello {
		t.Fatalf("first frame type = %q, want hello", env.Type)
	}
	if env.Participant == nil || env.Participant.ID != c.Self().ID {
		t.Error("hello missing participant identity")
	}
	if env.State == nil || len(env.State.Nodes) != 1 {
		t.Errorf("hello state = %+v, want the local node", env.State)
	}

	waitFor(t, changed, "state merge notification")
	deadline := time.After(2 * time.Second)
	for len(c.Nodes()) != 2 {
		select {
		case <-deadline:
			t.Fatalf("nodes = %+v, want local and remote", c.Nodes())
		case <-time.After(10 * time.Millisecond):
		}
	}

	ps := waitFor(t, presence, "presence snapshot")
	if len(ps) != 2 {
		t.Fatalf("participants = %+v, want self plus peer", ps)
	}
}

func TestParticipantsSortedAndIncludeSelf(t *testing.T) {
	c := newTestClient(t, "http://relay.invalid")
	c.mu.Lock()
	c.self.Name = "mmm"
	c.peers["p1"] = Participant{ID: "p1", Name: "zzz"}
	c.peers["p2"] = Participant{ID: "p2", Name: "aaa"}
	c.mu.Unlock()

	got := c.Participants()
	want := []string{"aaa", "mmm", "zzz"}
	if len(got) != len(want) {
		t.Fatalf("participants = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("participants[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(serverURL, "room-1", "tester", "#00ff41", log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

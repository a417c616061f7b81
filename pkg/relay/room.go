package relay

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/bizcanvas/pkg/collab"
	"github.com/matzehuels/bizcanvas/pkg/observability"
)

const (
	helloTimeout = 10 * time.Second
	saveTimeout  = 5 * time.Second
	sendBuffer   = 256
)

// Hub owns the live rooms. Rooms materialize on first join, loading their
// last snapshot from the store, and are released when the last participant
// leaves.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	store  RoomStore
	logger *log.Logger
}

// NewHub creates a hub backed by the given store.
func NewHub(store RoomStore, logger *log.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]*Room),
		store:  store,
		logger: logger,
	}
}

// Room returns the live room, loading its snapshot if it is not already
// resident.
func (h *Hub) Room(ctx context.Context, id string) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[id]; ok {
		return room, nil
	}

	doc := collab.NewDocument("relay:" + id)
	state, err := h.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if state != nil {
		doc.Merge(*state)
	}

	room := &Room{
		id:    id,
		hub:   h,
		doc:   doc,
		peers: make(map[*peer]collab.Participant),
	}
	h.rooms[id] = room
	return room, nil
}

// release drops a room from the live set once it is empty.
func (h *Hub) release(room *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room.mu.Lock()
	empty := len(room.peers) == 0
	room.mu.Unlock()
	if empty {
		delete(h.rooms, room.id)
	}
}

// Room is one live canvas room: a document replica plus the connected
// participants.
type Room struct {
	id  string
	hub *Hub
	doc *collab.Document

	mu    sync.Mutex
	peers map[*peer]collab.Participant
}

// peer is one websocket connection. Outbound frames go through a buffered
// channel drained by a single writer goroutine; a full buffer drops the
// frame rather than stalling the room, and the next state exchange repairs
// the gap.
type peer struct {
	conn *websocket.Conn
	send chan collab.Envelope
	once sync.Once
}

func (p *peer) close() {
	p.once.Do(func() {
		close(p.send)
		p.conn.Close()
	})
}

func (p *peer) writeLoop() {
	for env := range p.send {
		if err := p.conn.WriteJSON(env); err != nil {
			p.conn.Close()
			return
		}
	}
}

// Serve runs the protocol for one connection until it drops. It blocks
// for the connection's lifetime.
func (r *Room) Serve(conn *websocket.Conn) {
	p := &peer{conn: conn, send: make(chan collab.Envelope, sendBuffer)}
	go p.writeLoop()
	defer p.close()

	// First frame must be the hello.
	conn.SetReadDeadline(time.Now().Add(helloTimeout))
	var hello collab.Envelope
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != collab.MsgHello || hello.Participant == nil {
		r.hub.logger.Debug("rejecting connection without hello", "room", r.id)
		return
	}
	conn.SetReadDeadline(time.Time{})

	r.join(p, *hello.Participant, hello.State)
	defer r.leave(p)

	for {
		var env collab.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		switch env.Type {
		case collab.MsgOps:
			if r.doc.Apply(env.Ops) {
				observability.Relay().OnOps(context.Background(), r.id, len(env.Ops))
				r.broadcast(p, collab.Envelope{Type: collab.MsgOps, Ops: env.Ops})
				r.persist()
			}
		case collab.MsgCursor:
			if env.Participant != nil {
				r.mu.Lock()
				r.peers[p] = *env.Participant
				r.mu.Unlock()
				r.broadcastPresence()
			}
		}
	}
}

// join merges the newcomer's state, answers with the room's merged state,
// and announces the new presence list.
func (r *Room) join(p *peer, who collab.Participant, state *collab.State) {
	changed := false
	if state != nil {
		changed = r.doc.Merge(*state)
	}

	r.mu.Lock()
	r.peers[p] = who
	size := len(r.peers)
	r.mu.Unlock()
	observability.Relay().OnJoin(context.Background(), r.id, size)

	merged := r.doc.Snapshot()
	p.send <- collab.Envelope{Type: collab.MsgState, State: &merged}

	if changed {
		// The newcomer brought edits the room had not seen (offline work);
		// everyone else resyncs from the merged state.
		r.broadcast(p, collab.Envelope{Type: collab.MsgState, State: &merged})
		r.persist()
	}
	r.broadcastPresence()
	r.hub.logger.Info("participant joined", "room", r.id, "participant", who.Name)
}

func (r *Room) leave(p *peer) {
	r.mu.Lock()
	who := r.peers[p]
	delete(r.peers, p)
	size := len(r.peers)
	r.mu.Unlock()
	observability.Relay().OnLeave(context.Background(), r.id, size)

	r.broadcastPresence()
	r.persist()
	r.hub.release(r)
	r.hub.logger.Info("participant left", "room", r.id, "participant", who.Name)
}

// broadcast queues an envelope to every peer except the sender.
func (r *Room) broadcast(from *peer, env collab.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for p := range r.peers {
		if p == from {
			continue
		}
		select {
		case p.send <- env:
		default:
			r.hub.logger.Debug("dropping frame for slow peer", "room", r.id)
		}
	}
}

// broadcastPresence sends the full presence list to every peer, the
// sender included, so each participant renders the same roster.
func (r *Room) broadcastPresence() {
	r.mu.Lock()
	list := make([]collab.Participant, 0, len(r.peers))
	for _, who := range r.peers {
		list = append(list, who)
	}
	for p := range r.peers {
		select {
		case p.send <- collab.Envelope{Type: collab.MsgPresence, Presence: list}:
		default:
		}
	}
	r.mu.Unlock()
}

// persist snapshots the room to the store. Failures are logged, not
// fatal; the live replica remains authoritative until the next snapshot
// succeeds.
func (r *Room) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	start := time.Now()
	err := r.hub.store.Save(ctx, r.id, r.doc.Snapshot())
	observability.Relay().OnSnapshot(ctx, r.id, time.Since(start), err)
	if err != nil {
		r.hub.logger.Error("snapshot failed", "room", r.id, "err", err)
	}
}

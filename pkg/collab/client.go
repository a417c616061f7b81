package collab

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Status is the connection state of a [Client].
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// Reconnect backoff bounds.
const (
	backoffInitial = time.Second
	backoffMax     = 30 * time.Second
)

// Client synchronizes a local [Document] replica with a relay room and
// tracks the room's presence map. Mutations are applied locally first, so
// a participant always observes its own edits in issue order, then
// broadcast; peers see them within one relay round trip while connected.
type Client struct {
	wsURL  string
	self   Participant
	doc    *Document
	logger *log.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	status  Status
	peers   map[string]Participant
	writeMu sync.Mutex

	onChange   func()
	onPresence func([]Participant)
	onStatus   func(Status)

	closed    chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client for the given relay URL and room. name and
// color identify the participant; a short random suffix keeps ids unique
// across instances sharing a name.
func NewClient(serverURL, roomID, name, color string, logger *log.Logger) (*Client, error) {
	id := uuid.NewString()[:8]
	if name == "" {
		name = "agent-" + id[:4]
	}
	if color == "" {
		color = "#00ff41"
	}

	wsURL, err := roomURL(serverURL, roomID)
	if err != nil {
		return nil, err
	}

	return &Client{
		wsURL:  wsURL,
		self:   Participant{ID: id, Name: name, Color: color},
		doc:    NewDocument(id),
		status: StatusDisconnected,
		peers:  make(map[string]Participant),
		logger: logger,
		closed: make(chan struct{}),
	}, nil
}

// roomURL turns an http(s) relay base URL into the room's websocket URL.
func roomURL(serverURL, roomID string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse relay url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported relay scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/rooms/" + url.PathEscape(roomID)
	return u.String(), nil
}

// OnChange registers the callback raised after the document changed, both
// for remote ops and for merged state. Register before Connect.
func (c *Client) OnChange(fn func()) { c.onChange = fn }

// OnPresence registers the callback raised with each presence snapshot.
func (c *Client) OnPresence(fn func([]Participant)) { c.onPresence = fn }

// OnStatus registers the callback raised on connection state transitions.
func (c *Client) OnStatus(fn func(Status)) { c.onStatus = fn }

// Self returns the local participant identity.
func (c *Client) Self() Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.self
}

// Status returns the current connection state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Nodes returns the live nodes of the local replica.
func (c *Client) Nodes() []Node { return c.doc.Nodes() }

// Meta returns a document metadata value (canvas name, template id).
func (c *Client) Meta(key string) string { return c.doc.Meta(key) }

// Participants returns the current presence snapshot including the local
// participant, sorted by name for stable display.
func (c *Client) Participants() []Participant {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Participant, 0, len(c.peers)+1)
	out = append(out, c.self)
	for _, p := range c.peers {
		if p.ID != c.self.ID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Connect starts the connection loop and returns immediately. The loop
// redials with bounded exponential backoff until ctx is cancelled or the
// client is closed; document state is re-exchanged on every successful
// dial, so edits made while offline merge into the room.
func (c *Client) Connect(ctx context.Context) {
	go c.run(ctx)
}

func (c *Client) run(ctx context.Context) {
	delay := backoffInitial
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		default:
		}

		c.setStatus(StatusConnecting)
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
		if err != nil {
			c.setStatus(StatusDisconnected)
			c.logger.Debug("relay dial failed", "url", c.wsURL, "err", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				return
			case <-c.closed:
				return
			case <-time.After(delay):
			}
			if delay *= 2; delay > backoffMax {
				delay = backoffMax
			}
			continue
		}
		delay = backoffInitial

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		state := c.doc.Snapshot()
		self := c.Self()
		if err := c.write(Envelope{Type: MsgHello, Participant: &self, State: &state}); err != nil {
			c.logger.Debug("hello failed", "err", err)
			conn.Close()
			continue
		}

		c.setStatus(StatusConnected)
		c.readLoop(conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		c.setStatus(StatusDisconnected)
	}
}

// readLoop consumes frames until the connection drops.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			conn.Close()
			return
		}

		switch env.Type {
		case MsgState:
			if env.State != nil && c.doc.Merge(*env.State) {
				c.notifyChange()
			}
		case MsgOps:
			if c.doc.Apply(env.Ops) {
				c.notifyChange()
			}
		case MsgPresence:
			c.mu.Lock()
			c.peers = make(map[string]Participant, len(env.Presence))
			for _, p := range env.Presence {
				c.peers[p.ID] = p
			}
			c.mu.Unlock()
			if c.onPresence != nil {
				c.onPresence(c.Participants())
			}
		}
	}
}

// AddNode places a node in the shared document and broadcasts it.
func (c *Client) AddNode(n Node) Node {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	self := c.Self()
	n.CreatedBy = self.ID
	n.CreatedAt = time.Now().UnixMilli()

	op := c.doc.Put(n)
	c.send(Envelope{Type: MsgOps, Ops: []Op{op}})
	c.notifyChange()
	return n
}

// MoveNode repositions a node. The update is structural: the node is
// removed and reinserted whole with the new coordinates, not patched in
// place, accepting whole-object merges under concurrent edits.
func (c *Client) MoveNode(id string, x, y float64) bool {
	var current *Node
	for _, n := range c.doc.Nodes() {
		if n.ID == id {
			n := n
			current = &n
			break
		}
	}
	if current == nil {
		return false
	}

	self := c.Self()
	current.X, current.Y = x, y
	current.EditedBy = self.ID
	current.EditedAt = time.Now().UnixMilli()

	del := c.doc.Delete(id)
	put := c.doc.Put(*current)
	c.send(Envelope{Type: MsgOps, Ops: []Op{del, put}})
	c.notifyChange()
	return true
}

// RemoveNode deletes a node from the shared document.
func (c *Client) RemoveNode(id string) {
	op := c.doc.Delete(id)
	c.send(Envelope{Type: MsgOps, Ops: []Op{op}})
	c.notifyChange()
}

// SetMeta writes a document metadata key (canvas name, template id).
func (c *Client) SetMeta(key, value string) {
	op := c.doc.SetMeta(key, value)
	c.send(Envelope{Type: MsgOps, Ops: []Op{op}})
}

// UpdateCursor broadcasts the local participant's cursor position.
func (c *Client) UpdateCursor(x, y float64) {
	c.mu.Lock()
	c.self.Cursor = &Cursor{X: x, Y: y}
	self := c.self
	c.mu.Unlock()

	c.send(Envelope{Type: MsgCursor, Participant: &self})
}

// Close tears down the connection. No further writes are attempted after
// Close returns.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
			c.conn = nil
		}
		c.status = StatusDisconnected
		c.mu.Unlock()
	})
}

// send writes an envelope when connected. While disconnected the envelope
// is dropped; the mutation survives in the local document and reaches the
// room through the state exchange on the next successful dial.
func (c *Client) send(env Envelope) {
	if err := c.write(env); err != nil {
		c.logger.Debug("send while offline", "type", env.Type)
	}
}

func (c *Client) write(env Envelope) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(env)
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	if c.status == s {
		c.mu.Unlock()
		return
	}
	c.status = s
	c.mu.Unlock()

	if c.onStatus != nil {
		c.onStatus(s)
	}
}

func (c *Client) notifyChange() {
	if c.onChange != nil {
		c.onChange()
	}
}

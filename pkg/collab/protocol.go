package collab

// Participant is the ephemeral identity broadcast over presence. It is
// never persisted; a participant who disconnects simply disappears from
// the next snapshot.
type Participant struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Cursor *Cursor `json:"cursor,omitempty"`
}

// Cursor is a participant's pointer position in canvas coordinates.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Message types exchanged between client and relay.
const (
	// MsgHello is the first client message in a connection: identity plus
	// the client's full document state, so offline edits merge on rejoin.
	MsgHello = "hello"

	// MsgState carries the relay's merged document state to a client.
	MsgState = "state"

	// MsgOps carries incremental document operations in either direction.
	MsgOps = "ops"

	// MsgPresence carries the full presence snapshot of a room.
	MsgPresence = "presence"

	// MsgCursor is a client's own presence update (cursor move).
	MsgCursor = "cursor"
)

// Envelope is the single wire frame; Type selects which fields are set.
type Envelope struct {
	Type string `json:"type"`

	Participant *Participant  `json:"participant,omitempty"` // hello, cursor
	State       *State        `json:"state,omitempty"`       // hello, state
	Ops         []Op          `json:"ops,omitempty"`         // ops
	Presence    []Participant `json:"presence,omitempty"`    // presence
}

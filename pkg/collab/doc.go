// Package collab keeps a canvas's node list consistent across multiple
// participants without a central arbiter.
//
// The shared state lives in a [Document]: a convergent replicated
// structure holding the node list and a small metadata map (canvas name,
// template id). Every record is a last-writer-wins register stamped with a
// Lamport clock and the writing actor's id; merging two replicas keeps the
// record with the greater stamp, with the actor id breaking ties. The
// merge is commutative, associative, and idempotent, so replicas converge
// to the same state regardless of delivery order or how long a participant
// was partitioned. Removed nodes leave tombstones so a delete is never
// resurrected by a stale reinsert.
//
// A [Client] synchronizes a Document over a websocket to a relay room.
// The relay fans operations out to every other participant and merges them
// into its own replica, which is what late joiners bootstrap from.
// Presence (identity and cursor per participant) is deliberately kept out
// of the document: it is an ephemeral last-write-wins map that vanishes
// with the connection.
//
// Connection lifecycle is disconnected → connecting → connected; on an
// unexpected drop the client retries with bounded exponential backoff and
// resumes by exchanging full state with the relay, so edits made while
// offline are merged rather than lost. Callers only need to react to
// status transitions to drive a liveness indicator.
package collab

// Package relay implements the synchronization server for shared canvas
// rooms.
//
// The relay is not an arbiter: it holds one replica of each room's
// document, merges whatever participants send, and fans operations out to
// everyone else. Conflict resolution happens inside the document itself
// (see the collab package), so the relay never needs to understand edit
// semantics beyond "merge and forward".
//
// # Protocol
//
// Each room is a websocket endpoint at /rooms/{roomID}. A participant
// opens the socket and sends a hello frame carrying its identity and its
// full document state; the relay merges that state, replies with its own
// merged state, and announces the updated presence list to the room. From
// then on the connection carries incremental op frames in both directions
// and cursor frames for presence.
//
// # Persistence
//
// Room state is snapshotted through a [RoomStore] so rooms survive relay
// restarts. The in-memory store is the default; the Mongo-backed store is
// for deployments where the relay itself may be replaced.
package relay

package relay

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/bizcanvas/pkg/collab"
)

// RoomInfo describes a persisted room without its document payload.
type RoomInfo struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomStore persists room document snapshots across relay restarts.
// Implementations treat the state as opaque; merging is the document's
// job.
type RoomStore interface {
	// Load retrieves a room's last snapshot. Returns nil, nil when the
	// room has never been saved.
	Load(ctx context.Context, roomID string) (*collab.State, error)

	// Save writes a room's snapshot, replacing any previous one.
	Save(ctx context.Context, roomID string, state collab.State) error

	// List returns every saved room, most recently updated first.
	List(ctx context.Context) ([]RoomInfo, error)

	// Delete removes a room's snapshot. Deleting an unknown room is not
	// an error.
	Delete(ctx context.Context, roomID string) error
}

// MemoryStore is an in-process RoomStore. Rooms vanish with the relay.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]memoryRoom
}

type memoryRoom struct {
	state     collab.State
	updatedAt time.Time
}

// NewMemoryStore creates an empty in-memory room store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]memoryRoom)}
}

func (s *MemoryStore) Load(ctx context.Context, roomID string) (*collab.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil
	}
	state := room.state
	return &state, nil
}

func (s *MemoryStore) Save(ctx context.Context, roomID string, state collab.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[roomID] = memoryRoom{state: state, updatedAt: time.Now()}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]RoomInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RoomInfo, 0, len(s.rooms))
	for id, room := range s.rooms {
		out = append(out, RoomInfo{ID: id, UpdatedAt: room.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, roomID)
	return nil
}

var _ RoomStore = (*MemoryStore)(nil)

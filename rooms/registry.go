package rooms

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"noteroom-server/core"
)

// room holds the shared mutable state of one synchronization scope. Its
// mutex serializes same-room operations; different rooms never contend.
type room struct {
	mu       sync.Mutex
	document string
	hasDoc   bool
	members  map[core.MemberID]struct{}
}

// Registry owns the process-wide room map. Rooms are created lazily on first
// use and never reclaimed, so long-running deployments accumulate room state
// unboundedly. Known resource-growth tradeoff, see DESIGN.md.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// getOrCreate returns the room for id, creating an empty one if absent.
// Idempotent, never fails. Any string, including "", is a valid room id.
func (r *Registry) getOrCreate(id string) *room {
	r.mu.RLock()
	rm, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return rm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok = r.rooms[id]; ok {
		return rm
	}
	rm = &room{members: make(map[core.MemberID]struct{})}
	r.rooms[id] = rm
	logrus.WithField("room_id", id).Debug("room created")
	return rm
}

// lookup returns the room only if it already exists.
func (r *Registry) lookup(id string) (*room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	return rm, ok
}

// ListRooms implements core.RoomLister for the HTTP API.
func (r *Registry) ListRooms(ctx context.Context) ([]core.RoomInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]core.RoomInfo, 0, len(r.rooms))
	for id, rm := range r.rooms {
		rm.mu.Lock()
		infos = append(infos, core.RoomInfo{
			ID:          id,
			MemberCount: len(rm.members),
			HasDocument: rm.hasDoc,
		})
		rm.mu.Unlock()
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].MemberCount == infos[j].MemberCount {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].MemberCount > infos[j].MemberCount
	})

	return infos, nil
}

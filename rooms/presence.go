package rooms

import (
	"sort"

	"github.com/sirupsen/logrus"

	"noteroom-server/core"
)

// Join adds member to the room, creating the room if needed. Re-joining is a
// no-op for the set. Returns a snapshot of the member set after the insert,
// sorted for stable delivery to the joining client.
func (r *Registry) Join(roomID string, member core.MemberID) []core.MemberID {
	rm := r.getOrCreate(roomID)

	rm.mu.Lock()
	rm.members[member] = struct{}{}
	snapshot := memberSnapshot(rm)
	rm.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room_id":       roomID,
		"connection_id": member,
		"members":       len(snapshot),
	}).Info("member joined room")

	return snapshot
}

// Leave removes member from the room's set and reports whether it was
// present. Referencing an absent member or an unknown room is a silent
// no-op.
func (r *Registry) Leave(roomID string, member core.MemberID) bool {
	rm, ok := r.lookup(roomID)
	if !ok {
		return false
	}

	rm.mu.Lock()
	_, present := rm.members[member]
	delete(rm.members, member)
	remaining := len(rm.members)
	rm.mu.Unlock()

	if present {
		logrus.WithFields(logrus.Fields{
			"room_id":       roomID,
			"connection_id": member,
			"members":       remaining,
		}).Info("member left room")
	}

	return present
}

// Members returns a sorted snapshot of the room's member set. Unknown rooms
// yield an empty slice.
func (r *Registry) Members(roomID string) []core.MemberID {
	rm, ok := r.lookup(roomID)
	if !ok {
		return []core.MemberID{}
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	return memberSnapshot(rm)
}

// memberSnapshot copies the member set; callers must hold the room lock.
func memberSnapshot(rm *room) []core.MemberID {
	snapshot := make([]core.MemberID, 0, len(rm.members))
	for id := range rm.members {
		snapshot = append(snapshot, id)
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i] < snapshot[j] })
	return snapshot
}

package rooms

import "github.com/sirupsen/logrus"

// UpdateDocument overwrites the room's document with content. Last write
// wins: no comparison, no merge, no version check, and the empty string is a
// valid document. The broadcast callback runs while the room lock is still
// held, so a room's read-modify-broadcast sequences never interleave and
// updates fan out in the order they arrived.
func (r *Registry) UpdateDocument(roomID, content string, broadcast func(content string)) {
	rm := r.getOrCreate(roomID)

	rm.mu.Lock()
	rm.document = content
	rm.hasDoc = true
	if broadcast != nil {
		broadcast(content)
	}
	rm.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"room_id":        roomID,
		"content_length": len(content),
	}).Debug("document updated")
}

// Document returns the room's current text and whether any update has been
// applied yet. A room that exists but was never written reports false, as
// does a room id never seen.
func (r *Registry) Document(roomID string) (string, bool) {
	rm, ok := r.lookup(roomID)
	if !ok {
		return "", false
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.document, rm.hasDoc
}

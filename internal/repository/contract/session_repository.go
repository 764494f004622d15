package contract

import "cet-mentor-be/pkg/store"

// ISessionRepository stores conversational session state keyed by an opaque
// session id. Implementations own TTL/purge mechanics; writes are
// last-write-wins with no merge logic.
type ISessionRepository interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
	Delete(sessionID string)
}

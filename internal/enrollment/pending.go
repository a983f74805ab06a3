package enrollment

import (
	"github.com/mmcdole/syllabus/internal/domain"
	"github.com/mmcdole/syllabus/internal/scheduler"
)

// ActionKind distinguishes the two deferrable removals.
type ActionKind int

const (
	KindUnenroll ActionKind = iota
	KindWishlistRemove
)

func (k ActionKind) String() string {
	switch k {
	case KindUnenroll:
		return "unenroll"
	case KindWishlistRemove:
		return "wishlist-remove"
	default:
		return "unknown"
	}
}

type pendingKey struct {
	id   domain.CourseID
	kind ActionKind
}

// pendingAction is an in-flight deferred removal. The token doubles as its
// identity: a commit callback only acts if its token is still registered.
type pendingAction struct {
	token scheduler.Token
}

// registry holds at most one pendingAction per (course, kind).
type registry struct {
	actions map[pendingKey]pendingAction
}

func newRegistry() *registry {
	return &registry{actions: make(map[pendingKey]pendingAction)}
}

func (r *registry) has(id domain.CourseID, kind ActionKind) bool {
	_, ok := r.actions[pendingKey{id, kind}]
	return ok
}

func (r *registry) put(id domain.CourseID, kind ActionKind, pa pendingAction) {
	r.actions[pendingKey{id, kind}] = pa
}

// take removes and returns the entry.
func (r *registry) take(id domain.CourseID, kind ActionKind) (pendingAction, bool) {
	key := pendingKey{id, kind}
	pa, ok := r.actions[key]
	if ok {
		delete(r.actions, key)
	}
	return pa, ok
}

// takeToken removes the entry only if it still carries tok.
func (r *registry) takeToken(id domain.CourseID, kind ActionKind, tok scheduler.Token) bool {
	key := pendingKey{id, kind}
	pa, ok := r.actions[key]
	if !ok || pa.token != tok {
		return false
	}
	delete(r.actions, key)
	return true
}

func (r *registry) len() int {
	return len(r.actions)
}

// drain removes every entry and returns their tokens.
func (r *registry) drain() []scheduler.Token {
	tokens := make([]scheduler.Token, 0, len(r.actions))
	for key, pa := range r.actions {
		tokens = append(tokens, pa.token)
		delete(r.actions, key)
	}
	return tokens
}

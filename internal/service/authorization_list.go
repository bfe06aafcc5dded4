package service

import "vendorhub/internal/model"

// AuthorizationList edits a vendor's authorized-user set in memory. Entries
// are keyed by user id; nothing is persisted until the surrounding edit
// session saves the final list.
type AuthorizationList struct {
	entries []model.AuthorizedUser
}

// NewAuthorizationList seeds an editor from the last persisted value,
// discarding duplicate user ids.
func NewAuthorizationList(entries []model.AuthorizedUser) *AuthorizationList {
	l := &AuthorizationList{}
	for _, e := range entries {
		l.Add(e)
	}
	return l
}

// Add appends the entry unless an entry with the same user id is already
// present.
func (l *AuthorizationList) Add(entry model.AuthorizedUser) {
	if l.Contains(entry.UserID) {
		return
	}
	l.entries = append(l.entries, entry)
}

// Remove filters out the entry with the given user id. Unknown ids are a
// no-op.
func (l *AuthorizationList) Remove(userID string) {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

func (l *AuthorizationList) Contains(userID string) bool {
	for _, e := range l.entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

func (l *AuthorizationList) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the current list in insertion order.
func (l *AuthorizationList) Entries() []model.AuthorizedUser {
	out := make([]model.AuthorizedUser, len(l.entries))
	copy(out, l.entries)
	return out
}

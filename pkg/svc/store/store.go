// Package store keeps the in-memory version history of watched objects.
//
// The store is append-only: every snapshot is kept in arrival order, both
// globally and per identity. Back-references between versions are resolved by
// scanning an identity's history for a resource version, never by pointers.
package store

// Store maps identities to their ordered snapshot history.
// It is not safe for concurrent use; the session loop is its only owner.
type Store struct {
	histories map[Identity][]Snapshot
	log       []Snapshot
}

// New returns an empty store.
func New() *Store {
	return &Store{
		histories: make(map[Identity][]Snapshot),
	}
}

// Insert appends snapshot to its identity's history and to the arrival log.
func (s *Store) Insert(snapshot Snapshot) {
	s.histories[snapshot.Identity] = append(s.histories[snapshot.Identity], snapshot)
	s.log = append(s.log, snapshot)
}

// History returns a copy of the identity's snapshots in insertion order.
func (s *Store) History(identity Identity) []Snapshot {
	history := s.histories[identity]
	if len(history) == 0 {
		return nil
	}

	out := make([]Snapshot, len(history))
	copy(out, history)

	return out
}

// All returns a copy of every snapshot in arrival order.
func (s *Store) All() []Snapshot {
	out := make([]Snapshot, len(s.log))
	copy(out, s.log)

	return out
}

// Len returns the number of snapshots ever inserted.
func (s *Store) Len() int {
	return len(s.log)
}

// Identities returns the number of distinct identities seen.
func (s *Store) Identities() int {
	return len(s.histories)
}

// At returns the snapshot at index in the identity's history.
func (s *Store) At(identity Identity, index int) (Snapshot, bool) {
	history := s.histories[identity]
	if index < 0 || index >= len(history) {
		return Snapshot{}, false
	}

	return history[index], true
}

// IndexOf returns the position of snapshot in its identity's history, matched
// by resource version. The boolean is false when the snapshot is unknown.
func (s *Store) IndexOf(snapshot Snapshot) (int, bool) {
	for index, item := range s.histories[snapshot.Identity] {
		if item.ResourceVersion == snapshot.ResourceVersion {
			return index, true
		}
	}

	return 0, false
}

// Sibling returns the snapshot immediately preceding snapshot in its
// identity's history. There is no sibling for the first or an unknown entry.
func (s *Store) Sibling(snapshot Snapshot) (Snapshot, bool) {
	index, found := s.IndexOf(snapshot)
	if !found || index == 0 {
		return Snapshot{}, false
	}

	return s.histories[snapshot.Identity][index-1], true
}

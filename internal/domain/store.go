package domain

// SnapshotStore persists the enrolled and wishlist collections.
// Load never fails: absent or corrupt entries yield empty collections.
// Commit writes both collections together or not at all.
type SnapshotStore interface {
	Load() Snapshot
	Commit(snap Snapshot) error
	Close() error
}

// NoticeStore persists lesson-completed notices in the same durable store.
type NoticeStore interface {
	Notices() []Notice
	SaveNotices(notices []Notice) error
}

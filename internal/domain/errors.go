package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSnapshotNotSaved indicates a commit did not reach durable storage.
	// The in-memory collections already reflect the change.
	ErrSnapshotNotSaved = errors.New("snapshot not saved")

	// ErrCourseNotFound indicates the requested catalog course does not exist
	ErrCourseNotFound = errors.New("course not found")

	// ErrStoreClosed indicates the store was used after Close
	ErrStoreClosed = errors.New("store is closed")
)

package store

import "errors"

var (
	// ErrSnapshotNotFound is returned by a Backend when nothing was ever saved under the name.
	ErrSnapshotNotFound = errors.New("store: snapshot not found")

	// ErrUnsupportedFormat is returned for an unknown snapshot file format.
	ErrUnsupportedFormat = errors.New("store: unsupported format")

	// ErrUnsupportedBackend is returned for an unknown backend name.
	ErrUnsupportedBackend = errors.New("store: unsupported backend")

	// ErrExtentMismatch is returned when a snapshot holds a different extent than requested.
	ErrExtentMismatch = errors.New("store: snapshot belongs to another extent")

	// ErrUnprocessedItems is returned when DynamoDB keeps rejecting part of a batch write.
	ErrUnprocessedItems = errors.New("store: unprocessed items after retries")
)

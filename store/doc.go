// Package store persists the extents of a restaurant.Registry.
//
// Each extent is saved as one snapshot holding the scalar attributes of every
// entity in creation order. Relationships are not persisted and are not
// rebuilt on load.
//
// # Backends
//
// [FileBackend] writes one file per extent into a directory, encoded with a
// [Codec]: YAML (default), JSON or BSON. [DynamoBackend] stores one item per
// record in a DynamoDB table, optionally spread over several partition keys:
//
//	cfg := store.DefaultConfig()
//	cfg.Backend = store.BackendDynamoDB
//	cfg.NumShards = 16
//	s, err := store.Open(cfg, dynamodb.NewFromConfig(awsCfg), logger)
//
// # Loading
//
// Load methods never report bad data. A missing snapshot leaves the extent as
// it is; a snapshot that cannot be read, decoded or validated empties the
// extent and logs a warning. Only context errors are returned.
//
// # Errors
//
//   - [ErrSnapshotNotFound] - nothing saved under the extent name
//   - [ErrUnsupportedFormat] - unknown file format
//   - [ErrUnsupportedBackend] - unknown backend or missing DynamoDB client
//   - [ErrExtentMismatch] - snapshot holds another extent
//   - [ErrUnprocessedItems] - DynamoDB kept rejecting a batch write
package store

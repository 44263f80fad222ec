package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps one snapshot file per extent in a directory.
type FileBackend struct {
	dir   string
	codec Codec
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a FileBackend writing codec-encoded files into dir.
func NewFileBackend(dir string, codec Codec) *FileBackend {
	if codec == nil {
		codec = yamlCodec{}
	}
	return &FileBackend{dir: dir, codec: codec}
}

// Path returns the snapshot file path for an extent.
func (b *FileBackend) Path(extent string) string {
	return filepath.Join(b.dir, extent+"."+b.codec.Extension())
}

// Write replaces the extent's snapshot file. The document is written to a
// temporary file first and renamed over the old one, so a failed write never
// leaves a truncated snapshot behind.
func (b *FileBackend) Write(ctx context.Context, doc Rows) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := b.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc.Name(), err)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, doc.Name()+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.Path(doc.Name())); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Read decodes the extent's snapshot file into doc.
// Returns ErrSnapshotNotFound if the file does not exist.
func (b *FileBackend) Read(ctx context.Context, doc Rows) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := b.Path(doc.Name())
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrSnapshotNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := b.codec.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Package media manages the device-local directory holding note attachments.
// Picked files are copied, never moved, into it, because the picker-provided
// source path may be ephemeral or revoked once the picking session ends.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/noteeasy/internal/logging"
)

// Dir is the stable media directory for note attachments.
type Dir struct {
	path string
	log  logging.Logger
}

func NewDir(path string, log logging.Logger) *Dir {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Dir{path: path, log: log}
}

// Path returns the directory path.
func (d *Dir) Path() string { return d.path }

// Ensure creates the media directory if it does not exist yet. Safe to call
// repeatedly.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.path, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", d.path, err)
	}
	return nil
}

// Relocate copies the file at sourceURI into the media directory under
// destName and returns the stable path. The source file is left in place.
func (d *Dir) Relocate(sourceURI, destName string) (string, error) {
	if err := d.Ensure(); err != nil {
		return "", err
	}

	src, err := os.Open(sourceURI)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", sourceURI, err)
	}
	defer src.Close()

	destPath := filepath.Join(d.path, destName)
	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(destPath)
		return "", fmt.Errorf("failed to copy into %s: %w", destPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	return destPath, nil
}

// Remove deletes the file at path if it exists. Failures are logged and
// swallowed: a missing or undeletable file must never block the note
// operation that triggered the cleanup.
func (d *Dir) Remove(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			d.log.Warn(ctx, "failed to stat media file", "path", path, "err", err)
		}
		return
	}
	if err := os.Remove(path); err != nil {
		d.log.Warn(ctx, "failed to remove media file", "path", path, "err", err)
	}
}

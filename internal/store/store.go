package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// Store lays classified frames out under a root directory as
// <root>/<source parent dir>/<category>/<file name>.
type Store struct {
	root    string
	log     *slog.Logger
	written map[string]string // destination → source that last wrote it
}

// New returns a Store rooted at root. Nothing is created until the first Put.
func New(root string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{root: root, log: log, written: make(map[string]string)}
}

// Root returns the output directory.
func (s *Store) Root() string {
	return s.root
}

// Destination computes where f is copied to. The group is the name of the
// frame's immediate parent directory and the category comes from its state.
func (s *Store) Destination(f types.Frame) string {
	group := filepath.Base(filepath.Dir(f.Path))
	return filepath.Join(s.root, group, f.State.Label(), filepath.Base(f.Path))
}

// Put copies f to its destination, creating parent directories as needed.
// An existing file at the destination is overwritten.
func (s *Store) Put(f types.Frame) (string, error) {
	dst := s.Destination(f)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}

	if prev, ok := s.written[dst]; ok && prev != f.Path {
		s.log.Warn("output collision, overwriting", "destination", dst, "previous", prev, "source", f.Path)
	}
	if err := copyFile(f.Path, dst); err != nil {
		return "", fmt.Errorf("copy %s to %s: %w", f.Path, dst, err)
	}
	s.written[dst] = f.Path
	return dst, nil
}

// Organize copies every frame in order and stops at the first failure.
// Files copied before the failure are left in place.
func (s *Store) Organize(ctx context.Context, frames []types.Frame) error {
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst, err := s.Put(f)
		if err != nil {
			return err
		}
		s.log.Debug("frame stored", "source", f.Path, "destination", dst)
	}
	return nil
}

// Reset removes the output directory and everything below it.
func (s *Store) Reset() error {
	s.written = make(map[string]string)
	return os.RemoveAll(s.root)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

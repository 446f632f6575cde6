// Package discovery enumerates captured frames under a directory tree.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// Discover walks root recursively and returns one Uncategorised frame per
// regular file, sorted by path. Directories are descended into but never
// returned. Any error while walking aborts discovery and no frames are
// returned.
//
// Paths are absolute so every frame has a named parent directory, even for
// files directly under a root given as ".". A symlinked root is followed;
// symlinks below it are skipped.
func Discover(root string) ([]types.Frame, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discover frames in %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("discover frames in %s: %w", root, err)
	}

	var frames []types.Frame
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		frames = append(frames, types.Frame{Path: filepath.Join(abs, rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover frames in %s: %w", root, err)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Path < frames[j].Path })
	return frames, nil
}

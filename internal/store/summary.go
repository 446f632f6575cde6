package store

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// Summary counts organized frames per group and category.
type Summary struct {
	Groups  map[string]map[string]int
	Totals  map[string]int
	Unknown int // files not at <group>/<category>/<file> with a known category
}

// GroupNames returns the group names in sorted order.
func (s Summary) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for g := range s.Groups {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

// Total returns the number of counted frames across all categories.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Totals {
		n += c
	}
	return n
}

// Summarize walks an output tree produced by Organize and counts its files.
func Summarize(root string) (Summary, error) {
	known := make(map[string]bool, len(types.Labels))
	for _, l := range types.Labels {
		known[l] = true
	}

	sum := Summary{Groups: make(map[string]map[string]int), Totals: make(map[string]int)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 || !known[parts[1]] {
			sum.Unknown++
			return nil
		}
		group, category := parts[0], parts[1]
		if sum.Groups[group] == nil {
			sum.Groups[group] = make(map[string]int)
		}
		sum.Groups[group][category]++
		sum.Totals[category]++
		return nil
	})
	return sum, err
}

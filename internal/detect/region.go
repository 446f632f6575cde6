package detect

import "github.com/JosiahBull/yolo-v8-explorations/internal/types"

// Contains reports whether (x, y) lies inside r, bounds inclusive.
func Contains(r types.Region, x, y int) bool {
	return x >= r.TopLeft.X && x <= r.BottomRight.X &&
		y >= r.TopLeft.Y && y <= r.BottomRight.Y
}

// RegionTable is an ordered list of regions excluded from scanning.
type RegionTable []types.Region

// Ignores reports whether (x, y) falls inside any region in the table.
func (t RegionTable) Ignores(x, y int) bool {
	for _, r := range t {
		if Contains(r, x, y) {
			return true
		}
	}
	return false
}

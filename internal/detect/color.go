package detect

import (
	"math"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// IsTarget reports whether every channel of pixel is strictly within
// tolerance*target of the matching target channel. Channels are compared
// independently; this is not a color distance.
func IsTarget(pixel, target types.RGB, tolerance float64) bool {
	for c := 0; c < 3; c++ {
		t := float64(target[c])
		if math.Abs(float64(pixel[c])-t) >= tolerance*t {
			return false
		}
	}
	return true
}

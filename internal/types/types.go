package types

// Coordinate is a pixel position in capture space.
type Coordinate struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Region is an inclusive axis-aligned rectangle. A region whose corners are
// inverted matches nothing.
type Region struct {
	Name        string     `yaml:"name,omitempty"`
	TopLeft     Coordinate `yaml:"top_left"`
	BottomRight Coordinate `yaml:"bottom_right"`
}

// RGB is an 8-bit per channel color triple.
type RGB [3]uint8

// StateKind tags the variant held by a FrameState.
type StateKind int

const (
	Uncategorised StateKind = iota
	NoTargets
	Targets
	HitBoxes // reserved, no producer yet
	Unsure   // reserved, no producer yet
)

// FrameState is the classification verdict for a frame. Regions is only
// meaningful for HitBoxes and Unsure.
type FrameState struct {
	Kind    StateKind
	Regions []Region
}

// HitBoxesState builds the reserved HitBoxes variant.
func HitBoxesState(regions []Region) FrameState {
	return FrameState{Kind: HitBoxes, Regions: regions}
}

// UnsureState builds the reserved Unsure variant.
func UnsureState(regions []Region) FrameState {
	return FrameState{Kind: Unsure, Regions: regions}
}

// Labels lists every category directory name in StateKind order.
var Labels = []string{"uncategorised", "no_targets", "targets", "hitboxes", "unsure"}

// Label returns the category directory name for the state.
func (s FrameState) Label() string {
	return s.Kind.String()
}

func (k StateKind) String() string {
	if k < 0 || int(k) >= len(Labels) {
		return "unknown"
	}
	return Labels[k]
}

// Frame is one captured image discovered on disk.
type Frame struct {
	Path  string
	State FrameState
}

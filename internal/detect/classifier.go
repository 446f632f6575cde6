package detect

import (
	"image"
	"image/color"

	"github.com/JosiahBull/yolo-v8-explorations/internal/config"
	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// Classifier applies a region table and the color matcher to decoded frames.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	regions RegionTable
	match   func(types.RGB) bool
}

// New builds a Classifier from cfg. The region table is copied.
func New(cfg config.Classifier) *Classifier {
	target, tol := cfg.TargetColor, cfg.Tolerance
	return &Classifier{
		regions: append(RegionTable(nil), cfg.IgnoredRegions...),
		match: func(px types.RGB) bool {
			return IsTarget(px, target, tol)
		},
	}
}

// Classify scans img row by row and returns Targets on the first matching
// pixel outside the ignored regions, or NoTargets once every remaining pixel
// has been checked. Coordinates are relative to the image bounds origin.
// The image is only read.
func (c *Classifier) Classify(img image.Image) types.FrameState {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.regions.Ignores(x-b.Min.X, y-b.Min.Y) {
				continue
			}
			if c.match(pixelAt(img, x, y)) {
				return types.FrameState{Kind: types.Targets}
			}
		}
	}
	return types.FrameState{Kind: types.NoTargets}
}

// pixelAt returns the non-premultiplied 8-bit color at (x, y), dropping alpha.
func pixelAt(img image.Image, x, y int) types.RGB {
	switch im := img.(type) {
	case *image.NRGBA:
		i := im.PixOffset(x, y)
		return types.RGB{im.Pix[i], im.Pix[i+1], im.Pix[i+2]}
	case *image.RGBA:
		i := im.PixOffset(x, y)
		if a := im.Pix[i+3]; a == 0xff {
			return types.RGB{im.Pix[i], im.Pix[i+1], im.Pix[i+2]}
		}
	}
	n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return types.RGB{n.R, n.G, n.B}
}

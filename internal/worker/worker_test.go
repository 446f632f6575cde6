package worker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/JosiahBull/yolo-v8-explorations/internal/config"
	"github.com/JosiahBull/yolo-v8-explorations/internal/detect"
	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// stubClassifier marks a frame as Targets when its top-left pixel is red.
type stubClassifier struct{}

func (stubClassifier) Classify(img image.Image) types.FrameState {
	r, _, _, _ := img.At(0, 0).RGBA()
	if r > 0 {
		return types.FrameState{Kind: types.Targets}
	}
	return types.FrameState{Kind: types.NoTargets}
}

func solid(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestProcess_ClassifiesEveryFrame(t *testing.T) {
	frames := make([]types.Frame, 50)
	for i := range frames {
		frames[i].Path = fmt.Sprintf("frame-%02d", i)
	}

	p := NewPool(4, stubClassifier{})
	p.Decode = func(path string) (image.Image, error) {
		var n int
		fmt.Sscanf(path, "frame-%d", &n)
		if n%2 == 0 {
			return solid(color.NRGBA{R: 255, A: 255}), nil
		}
		return solid(color.NRGBA{A: 255}), nil
	}

	if err := p.Process(context.Background(), frames); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for i, f := range frames {
		want := types.NoTargets
		if i%2 == 0 {
			want = types.Targets
		}
		if f.State.Kind != want {
			t.Errorf("%s: state = %v, want %v", f.Path, f.State.Kind, want)
		}
		if f.Path != fmt.Sprintf("frame-%02d", i) {
			t.Errorf("frame %d path changed to %s", i, f.Path)
		}
	}
	if p.Processed() != uint64(len(frames)) {
		t.Errorf("Processed() = %d, want %d", p.Processed(), len(frames))
	}
}

func TestProcess_ProgressCallback(t *testing.T) {
	frames := make([]types.Frame, 20)
	for i := range frames {
		frames[i].Path = fmt.Sprint(i)
	}

	var (
		mu   sync.Mutex
		seen = make(map[uint64]bool)
	)
	p := NewPool(3, stubClassifier{})
	p.Decode = func(string) (image.Image, error) { return solid(color.NRGBA{A: 255}), nil }
	p.OnProgress = func(done uint64) {
		mu.Lock()
		seen[done] = true
		mu.Unlock()
	}

	if err := p.Process(context.Background(), frames); err != nil {
		t.Fatal(err)
	}
	// Every count from 1..n is reported exactly once, in whatever order.
	for i := uint64(1); i <= uint64(len(frames)); i++ {
		if !seen[i] {
			t.Errorf("progress count %d never reported", i)
		}
	}
}

func TestProcess_FailFast(t *testing.T) {
	frames := make([]types.Frame, 100)
	for i := range frames {
		frames[i].Path = fmt.Sprint(i)
	}

	errBad := errors.New("not an image")
	var decoded atomic.Int32
	p := NewPool(2, stubClassifier{})
	p.Decode = func(path string) (image.Image, error) {
		decoded.Add(1)
		if path == "3" {
			return nil, errBad
		}
		return solid(color.NRGBA{A: 255}), nil
	}

	err := p.Process(context.Background(), frames)
	if !errors.Is(err, errBad) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if !strings.Contains(err.Error(), "decode 3") {
		t.Errorf("error should name the failing frame: %v", err)
	}
	if frames[3].State.Kind != types.Uncategorised {
		t.Errorf("failed frame state = %v, want uncategorised", frames[3].State.Kind)
	}
	if int(decoded.Load()) == len(frames) {
		t.Error("expected remaining frames to be abandoned after the failure")
	}
}

func TestProcess_KeepGoing(t *testing.T) {
	frames := make([]types.Frame, 10)
	for i := range frames {
		frames[i].Path = fmt.Sprint(i)
	}

	p := NewPool(3, stubClassifier{})
	p.KeepGoing = true
	p.Decode = func(path string) (image.Image, error) {
		if path == "2" || path == "7" {
			return nil, fmt.Errorf("corrupt %s", path)
		}
		return solid(color.NRGBA{R: 200, A: 255}), nil
	}

	err := p.Process(context.Background(), frames)
	if err == nil {
		t.Fatal("expected joined error")
	}
	for _, bad := range []string{"decode 2", "decode 7"} {
		if !strings.Contains(err.Error(), bad) {
			t.Errorf("joined error missing %q: %v", bad, err)
		}
	}
	for i, f := range frames {
		want := types.Targets
		if i == 2 || i == 7 {
			want = types.Uncategorised
		}
		if f.State.Kind != want {
			t.Errorf("frame %d: state = %v, want %v", i, f.State.Kind, want)
		}
	}
	if p.Processed() != uint64(len(frames)) {
		t.Errorf("Processed() = %d, want %d", p.Processed(), len(frames))
	}
}

func TestProcess_Cancelled(t *testing.T) {
	frames := make([]types.Frame, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPool(2, stubClassifier{})
	p.Decode = func(string) (image.Image, error) { return solid(color.NRGBA{A: 255}), nil }

	if err := p.Process(ctx, frames); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	p := NewPool(0, stubClassifier{})
	if p.Size < 1 {
		t.Errorf("pool size should default to the CPU count, got %d", p.Size)
	}
	if err := p.Process(context.Background(), nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcess_RealFiles(t *testing.T) {
	dir := t.TempDir()
	hit := filepath.Join(dir, "a", "hit.png")
	miss := filepath.Join(dir, "b", "miss.png")
	bogus := filepath.Join(dir, "b", "bogus.png")

	writePNG(t, hit, solid(color.NRGBA{R: 222, G: 35, B: 28, A: 255}))
	writePNG(t, miss, solid(color.NRGBA{R: 20, G: 20, B: 20, A: 255}))
	if err := os.WriteFile(bogus, []byte("definitely not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.IgnoredRegions = nil
	p := NewPool(2, detect.New(cfg))

	frames := []types.Frame{{Path: hit}, {Path: miss}}
	if err := p.Process(context.Background(), frames); err != nil {
		t.Fatal(err)
	}
	if frames[0].State.Kind != types.Targets || frames[1].State.Kind != types.NoTargets {
		t.Errorf("unexpected states: %v, %v", frames[0].State.Kind, frames[1].State.Kind)
	}

	if err := NewPool(1, detect.New(cfg)).Process(context.Background(), []types.Frame{{Path: bogus}}); err == nil {
		t.Error("expected decode error for a non-image file")
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

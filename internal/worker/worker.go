package worker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
)

// Classifier turns a decoded frame into a verdict.
type Classifier interface {
	Classify(img image.Image) types.FrameState
}

// Pool classifies frames on a fixed number of goroutines. Each worker owns
// the decoded image of the frame it is handling; the buffer is released as
// soon as the verdict is stored.
type Pool struct {
	Size       int
	Classifier Classifier

	// Decode loads the image at path. Defaults to DecodeFile.
	Decode func(path string) (image.Image, error)

	// KeepGoing leaves failing frames Uncategorised and carries on instead
	// of aborting the run on the first error.
	KeepGoing bool

	// OnProgress is called after every finished frame with the running total.
	// It may be called concurrently.
	OnProgress func(done uint64)

	Logger *slog.Logger

	processed atomic.Uint64
}

// NewPool returns a pool of size workers; size < 1 means one per CPU.
func NewPool(size int, c Classifier) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	return &Pool{Size: size, Classifier: c, Decode: DecodeFile}
}

// Processed reports how many frames have finished so far.
func (p *Pool) Processed() uint64 {
	return p.processed.Load()
}

// Process decodes and classifies every frame, writing the verdict into
// frames in place. It returns once all workers have stopped.
//
// By default the first failure cancels outstanding work and is returned.
// With KeepGoing set, every failure is collected and returned joined after
// all frames have been attempted.
func (p *Pool) Process(ctx context.Context, frames []types.Frame) error {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	size := p.Size
	if size < 1 {
		size = runtime.NumCPU()
	}
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	taskChan := make(chan int, size)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < size; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for idx := range taskChan {
				// Drain without work once the run is cancelled
				if ctx.Err() != nil {
					continue
				}

				state, err := p.classify(frames[idx].Path)
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					if !p.KeepGoing {
						cancel()
						continue
					}
					log.Warn("frame skipped", "worker", id, "path", frames[idx].Path, "error", err)
				} else {
					frames[idx].State = state
					log.Debug("frame classified", "worker", id, "path", frames[idx].Path, "state", state.Label())
				}

				done := p.processed.Add(1)
				if p.OnProgress != nil {
					p.OnProgress(done)
				}
			}
		}(i)
	}

dispatch:
	for i := range frames {
		select {
		case taskChan <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(taskChan)
	wg.Wait()

	if len(errs) > 0 {
		if p.KeepGoing {
			return errors.Join(errs...)
		}
		return errs[0]
	}
	return parent.Err()
}

// classify keeps the decoded image scoped to a single call.
func (p *Pool) classify(path string) (types.FrameState, error) {
	decode := p.Decode
	if decode == nil {
		decode = DecodeFile
	}
	img, err := decode(path)
	if err != nil {
		return types.FrameState{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return p.Classifier.Classify(img), nil
}

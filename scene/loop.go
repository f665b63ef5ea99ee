package scene

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// DefaultFrameInterval is the shortest time a frame takes when paced by RunFrames.
const DefaultFrameInterval = 15 * time.Millisecond

// ErrStopLoop may be returned by a FrameFunc to end RunFrames without an error.
var ErrStopLoop = errors.New("stop frame loop")

// FrameFunc renders frame number frame.
type FrameFunc func(ctx context.Context, frame int) error

// RunFrames calls fn once per frame until frames frames have run, fn fails or ctx is done. A frame that finishes
// before interval has passed on clk waits out the rest of it. frames <= 0 runs until stopped. It returns the
// number of frames that ran.
func RunFrames(ctx context.Context, clk clock.Clock, interval time.Duration, frames int, fn FrameFunc) (int, error) {
	for frame := 0; frames <= 0 || frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			return frame, err
		}

		start := clk.Now()
		if err := fn(ctx, frame); err != nil {
			if errors.Is(err, ErrStopLoop) {
				return frame + 1, nil
			}
			return frame + 1, err
		}

		wait := interval - clk.Since(start)
		if wait <= 0 {
			continue
		}
		timer := clk.Timer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return frame + 1, ctx.Err()
		case <-timer.C:
		}
	}
	return frames, nil
}

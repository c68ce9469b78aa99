package sim

import "github.com/san-kum/arena/internal/dynamo"

// Observer is notified after every frame. bodies is only valid for the
// duration of the call.
type Observer interface {
	OnFrame(stats FrameStats, bodies []dynamo.Body)
}

type ObserverFunc func(stats FrameStats, bodies []dynamo.Body)

func (f ObserverFunc) OnFrame(stats FrameStats, bodies []dynamo.Body) { f(stats, bodies) }

// Recorder keeps a copy of every observed frame.
type Recorder struct {
	Frames [][]dynamo.Body
	Stats  []FrameStats
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{
		Frames: make([][]dynamo.Body, 0, capacity),
		Stats:  make([]FrameStats, 0, capacity),
	}
}

func (r *Recorder) OnFrame(stats FrameStats, bodies []dynamo.Body) {
	r.Frames = append(r.Frames, append([]dynamo.Body(nil), bodies...))
	r.Stats = append(r.Stats, stats)
}

// Last returns the most recent frame, or nil.
func (r *Recorder) Last() []dynamo.Body {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}

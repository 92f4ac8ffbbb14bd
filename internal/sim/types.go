package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric reduces the frames of a run to a single value.
type Metric interface {
	Name() string
	Observe(frame int, c *cloth.Cloth, st cloth.StepStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(frame int, c *cloth.Cloth, st cloth.StepStats)
}

// Script mutates the pointer or the cloth's grabbed set before a frame is
// stepped. It plays the role of the external driver.
type Script interface {
	Apply(frame int, c *cloth.Cloth, ptr *cloth.Pointer)
}

type Config struct {
	Frames        int
	ValidateEvery int // run Cloth.Validate every n frames; 0 disables
}

func DefaultConfig() Config {
	return Config{
		Frames:        300,
		ValidateEvery: 0,
	}
}

type Result struct {
	Frames  int
	Totals  cloth.StepStats
	Series  map[string][]float64
	Metrics map[string]float64
	Final   []cloth.Sample
	Groups  map[string][]cloth.Sample // live members per named group
	Elapsed time.Duration
	Errors  []error
}

type FrameError struct {
	Frame   int
	Message string
	Err     error
}

func (e FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Message, e.Err)
	}
	return fmt.Sprintf("frame %d: %s", e.Frame, e.Message)
}

func (e FrameError) Unwrap() error { return e.Err }

package metrics

import (
	"math"

	"github.com/san-kum/pushcart/internal/dynamo"
)

// TrackingError is the mean distance from a target position, in track
// units, over all observed steps.
type TrackingError struct {
	target  float64
	sum     float64
	samples int
}

func NewTrackingError(target float64) *TrackingError {
	return &TrackingError{target: target}
}

func (e *TrackingError) Name() string {
	return "tracking_error"
}

func (e *TrackingError) Observe(k dynamo.Kinematics, force float64, t float64) {
	e.sum += math.Abs(e.target - k.Position)
	e.samples++
}

func (e *TrackingError) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *TrackingError) Reset() {
	e.sum = 0
	e.samples = 0
}

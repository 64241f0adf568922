package metrics

import "github.com/san-kum/pushcart/internal/dynamo"

// OnTrack is the fraction of observed steps with the cart inside the
// visible track.
type OnTrack struct {
	name       string
	width      float64
	violations int
	samples    int
}

func NewOnTrack(width float64) *OnTrack {
	return &OnTrack{
		name:  "on_track",
		width: width,
	}
}

func (o *OnTrack) Name() string {
	return o.name
}

func (o *OnTrack) Observe(k dynamo.Kinematics, force float64, t float64) {
	o.samples++
	if k.Position < 0 || k.Position > o.width {
		o.violations++
	}
}

func (o *OnTrack) Value() float64 {
	if o.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(o.violations)/float64(o.samples)
}

func (o *OnTrack) Reset() {
	o.violations = 0
	o.samples = 0
}

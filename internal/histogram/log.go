// Package histogram records the force-vs-position trace plotted by the UI.
//
// A [Log] keeps samples in chronological order. Positions are not monotonic:
// the cart reverses and the curve folds back on itself. Runs of equal values
// are compressed to their two endpoints so a cart under constant force grows
// the log by O(direction changes) rather than O(frames).
package histogram

import "github.com/san-kum/pushcart/internal/dynamo"

type Log struct {
	samples    []dynamo.Sample
	trackWidth float64
}

// New returns a log seeded with (seed, 0). Samples outside [0, trackWidth]
// are dropped on append.
func New(seed, trackWidth float64) *Log {
	return &Log{
		samples:    []dynamo.Sample{{Position: seed, Value: 0}},
		trackWidth: trackWidth,
	}
}

// Append records a sample.
func (l *Log) Append(position, value float64) {
	n := len(l.samples)
	if n > 0 && l.samples[n-1].Position == position {
		return
	}
	if !(position >= 0 && position <= l.trackWidth) {
		return
	}

	// third equal value in a row slides the run's end forward
	if n > 1 && l.samples[n-1].Value == value && l.samples[n-2].Value == value {
		l.samples[n-1].Position = position
		return
	}

	l.samples = append(l.samples, dynamo.Sample{Position: position, Value: value})
}

// Samples returns a copy of the trace in insertion order.
func (l *Log) Samples() []dynamo.Sample {
	out := make([]dynamo.Sample, len(l.samples))
	copy(out, l.samples)
	return out
}

func (l *Log) Len() int { return len(l.samples) }

func (l *Log) TrackWidth() float64 { return l.trackWidth }

// First panics only on an empty log, which New never produces.
func (l *Log) First() dynamo.Sample { return l.samples[0] }

func (l *Log) Last() dynamo.Sample { return l.samples[len(l.samples)-1] }

// Segment is a maximal run of samples whose values share a sign. Zero-valued
// samples belong to the run they follow.
type Segment struct {
	Positive bool
	Samples  []dynamo.Sample
}

// Segments splits the trace at sign changes for filled plotting. The sample
// where the sign flips starts the new segment and also closes the old one,
// so consecutive segments share an endpoint.
func (l *Log) Segments() []Segment {
	if len(l.samples) == 0 {
		return nil
	}

	segs := make([]Segment, 0, 4)
	cur := Segment{Positive: l.samples[0].Value >= 0}
	for _, s := range l.samples {
		flip := (cur.Positive && s.Value < 0) || (!cur.Positive && s.Value > 0)
		if flip {
			cur.Samples = append(cur.Samples, dynamo.Sample{Position: s.Position})
			segs = append(segs, cur)
			cur = Segment{
				Positive: s.Value > 0,
				Samples:  []dynamo.Sample{{Position: s.Position}},
			}
		}
		cur.Samples = append(cur.Samples, s)
	}
	return append(segs, cur)
}

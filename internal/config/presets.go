package config

import (
	"sort"

	"github.com/san-kum/pushcart/internal/control"
)

func position(p float64) *float64 { return &p }

var Presets = map[string]func() *Config{
	// one long push from the left, then coast off the track
	"push": func() *Config {
		c := DefaultConfig()
		c.InitialPosition = position(200)
		c.Duration = 6
		c.Script = []control.Keyframe{
			{At: 0, Duration: 1.5, Edge: control.EdgeLeft, Depth: 1},
		}
		return c
	},
	// short taps that barely move the cart
	"tap": func() *Config {
		c := DefaultConfig()
		c.Duration = 8
		c.Script = []control.Keyframe{
			{At: 0, Duration: 0.2, Edge: control.EdgeLeft, Depth: 0.5},
			{At: 2, Duration: 0.2, Edge: control.EdgeRight, Depth: 0.5},
			{At: 4, Duration: 0.2, Edge: control.EdgeLeft, Depth: 0.5},
		}
		return c
	},
	// push, brake, push back: folds the histogram
	"shuttle": func() *Config {
		c := DefaultConfig()
		c.Duration = 10
		c.Script = []control.Keyframe{
			{At: 0, Duration: 1, Edge: control.EdgeLeft, Depth: 1},
			{At: 2, Duration: 2, Edge: control.EdgeRight, Depth: 1},
			{At: 5, Duration: 1, Edge: control.EdgeLeft, Depth: 1},
		}
		return c
	},
	// a PID loop parks the cart at three quarters of the track
	"park": func() *Config {
		c := DefaultConfig()
		c.InitialPosition = position(200)
		c.Duration = 15
		sp := control.DefaultSeekParams(600)
		c.Seek = &sp
		return c
	},
	// nobody touches the cart
	"coast": func() *Config {
		c := DefaultConfig()
		c.InitialVelocity = 1
		c.Duration = 5
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

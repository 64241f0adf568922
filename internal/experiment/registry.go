package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/pushcart/internal/config"
	"github.com/san-kum/pushcart/internal/control"
	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/integrators"
	"github.com/san-kum/pushcart/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	sources     map[string]func(*config.Config) (dynamo.PointerSource, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		sources:     make(map[string]func(*config.Config) (dynamo.PointerSource, error)),
	}

	r.integrators["semi-implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }

	r.sources["idle"] = func(*config.Config) (dynamo.PointerSource, error) {
		return control.NewIdle(), nil
	}
	r.sources["script"] = func(cfg *config.Config) (dynamo.PointerSource, error) {
		return control.NewScript(cfg.Cart(cfg.StartPosition()), cfg.Script)
	}
	r.sources["seek"] = func(cfg *config.Config) (dynamo.PointerSource, error) {
		p := control.DefaultSeekParams(cfg.TrackWidth / 2)
		if cfg.Seek != nil {
			p = *cfg.Seek
		}
		return control.NewSeek(cfg.Cart(cfg.StartPosition()), p), nil
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("integrator %q: %w", name, dynamo.ErrUnknown)
	}
	return fn(), nil
}

// SourceName resolves an empty source name: "script" when the config
// carries keyframes, "seek" when it carries seek gains, "idle" otherwise.
func SourceName(name string, cfg *config.Config) string {
	switch {
	case name != "":
		return name
	case len(cfg.Script) > 0:
		return "script"
	case cfg.Seek != nil:
		return "seek"
	}
	return "idle"
}

func (r *Registry) GetSource(name string, cfg *config.Config) (dynamo.PointerSource, error) {
	name = SourceName(name, cfg)
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("pointer source %q: %w", name, dynamo.ErrUnknown)
	}
	return fn(cfg)
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics adds tracking_error when the config carries a seek target.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewWork(),
		metrics.NewControlEffort(),
		metrics.NewOnTrack(cfg.TrackWidth),
	}
	if cfg.Seek != nil {
		ms = append(ms, metrics.NewTrackingError(cfg.Seek.Target))
	}
	return ms
}

package integrator

import (
	"fmt"
	"strings"

	"github.com/jchodera/openmmtools/internal/engine"
)

// Defaults for integrators constructed through the registry.
const (
	DefaultTemperature   = 300.0 // K
	DefaultFriction      = 1.0   // 1/ps
	DefaultCollisionRate = 10.0  // 1/ps
	DefaultStepsPerMove  = 10
	DefaultMixing        = 0.5
)

// Entry pairs an integrator name with a constructor taking the timestep in
// picoseconds. Names follow the *Integrator convention so a suite can
// enumerate every known scheme without reflection.
type Entry struct {
	Name string
	New  func(dt float64) engine.Integrator
}

// Registry returns the static table of known integrators.
func Registry() []Entry {
	return []Entry{
		{Name: "VelocityVerletIntegrator", New: func(dt float64) engine.Integrator {
			return NewVelocityVerlet(dt)
		}},
		{Name: "LeapfrogIntegrator", New: func(dt float64) engine.Integrator {
			return NewLeapfrog(dt)
		}},
		{Name: "AndersenVelocityVerletIntegrator", New: func(dt float64) engine.Integrator {
			return NewAndersenVelocityVerlet(dt, DefaultTemperature, DefaultCollisionRate)
		}},
		{Name: "LangevinIntegrator", New: func(dt float64) engine.Integrator {
			return NewLangevin(dt, DefaultTemperature, DefaultFriction)
		}},
		{Name: "BitwiseReversibleVelocityVerletIntegrator", New: func(dt float64) engine.Integrator {
			return NewBitwiseReversibleVelocityVerlet(dt)
		}},
		{Name: "HMCIntegrator", New: func(dt float64) engine.Integrator {
			return NewHMC(dt, DefaultTemperature, DefaultStepsPerMove)
		}},
		{Name: "GHMCIntegrator", New: func(dt float64) engine.Integrator {
			return NewGHMC(dt, DefaultTemperature, DefaultMixing)
		}},
	}
}

// Lookup resolves an entry by name.
func Lookup(name string) (Entry, error) {
	for _, e := range Registry() {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown integrator: %s", name)
}

// Match returns the registry entries whose names carry the given suffix.
func Match(suffix string) []Entry {
	var matched []Entry
	for _, e := range Registry() {
		if strings.HasSuffix(e.Name, suffix) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Names lists the registered integrator names in registry order.
func Names() []string {
	entries := Registry()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

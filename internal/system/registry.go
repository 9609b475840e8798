package system

import (
	"fmt"

	"github.com/jchodera/openmmtools/internal/engine"
)

// Entry pairs a system name with its constructor.
type Entry struct {
	Name string
	New  func() engine.System
}

// Registry returns the static table of known test systems.
func Registry() []Entry {
	return []Entry{
		{Name: "HarmonicOscillator", New: func() engine.System { return NewHarmonicOscillator() }},
		{Name: "IdealGas", New: func() engine.System { return NewIdealGas() }},
		{Name: "LennardJonesCluster", New: func() engine.System { return NewLennardJonesCluster() }},
		{Name: "DiatomicFluid", New: func() engine.System { return NewDiatomicFluid() }},
	}
}

// Lookup resolves a system by name.
func Lookup(name string) (engine.System, error) {
	for _, e := range Registry() {
		if e.Name == name {
			return e.New(), nil
		}
	}
	return nil, fmt.Errorf("unknown system: %s", name)
}

// Names lists the registered system names in registry order.
func Names() []string {
	entries := Registry()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

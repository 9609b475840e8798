// Package system provides the predefined molecular test systems the
// verification checks run against.
//
// Each system implements the [engine.System] interface, defining masses,
// reference positions and the force field:
//
//   - [HarmonicOscillator]: single particle in an isotropic harmonic well
//   - [IdealGas]: non-interacting particles, potential identically zero
//   - [LennardJonesCluster]: argon-like lattice cluster with a weak restraint
//   - [DiatomicFluid]: harmonically bonded pairs with intermolecular
//     Lennard-Jones interactions
//
// All quantities use MD units: nm, ps, amu, kJ/mol, kelvin. Reference
// positions are chosen near a potential minimum so a femtosecond-scale
// timestep is stable from a temperature-randomized start.
package system

// Package sim orchestrates the implicit time stepping of the wave system.
//
// A [Simulation] owns two time levels of the fields (double-buffered,
// swapped at commit), the scalar time, and a [Phase]:
//
//	PhaseInit -> PhaseStepping -> PhaseDone or PhaseFailed
//
// Each [Simulation.Step] seeds the advanced level with a copy of the
// current one, relaxes it to convergence, commits it by swapping buffers,
// and emits a [Snapshot] to the registered observers and metrics. A step
// that fails to converge moves the simulation to PhaseFailed and stepping
// aborts; an unconverged state is not allowed to propagate.
//
// Simulation instances are NOT thread-safe; the Gauss-Seidel sweep is
// inherently sequential and no intra-step parallelism is attempted.
package sim

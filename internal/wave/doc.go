// Package wave defines the discretized first-order wave system.
//
// The scalar wave equation is recast in two coupled fields, pp and pi,
// satisfying pp_t = pi_x and pi_t = pp_x in the interior. At each grid
// edge a field is instead coupled to its own one-sided derivative, which
// approximates a radiating (non-reflecting) boundary: near an edge the
// outgoing characteristic makes a field's outward derivative track its
// own time derivative.
//
// [System] evaluates the per-point residuals of the implicit, time-centered
// discretization, and [Pulse] builds the t=0 field values. The relaxation
// engine that drives the residuals to zero lives in the relax package.
package wave

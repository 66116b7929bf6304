// Package analysis provides frequency diagnostics for recorded runs.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/cnwave/internal/sim"
)

// ProbeSeries extracts the pp time series at one grid point from a run's
// snapshots.
func ProbeSeries(snaps []sim.Snapshot, i int) []float64 {
	series := make([]float64, len(snaps))
	for k, snap := range snaps {
		series[k] = snap.PP[i]
	}
	return series
}

// FFT is a radix-2 transform; the input is truncated to the largest power
// of two.
func FFT(data []float64) []complex128 {
	n := 1
	for 2*n <= len(data) {
		n *= 2
	}

	buf := make([]complex128, n)
	for i := 0; i < n; i++ {
		buf[i] = complex(data[i], 0)
	}
	return fft(buf)
}

func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return x
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitudes of the positive-frequency bins.
func PowerSpectrum(data []float64) []float64 {
	out := FFT(data)
	ps := make([]float64, len(out)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-DC bin of a series sampled at
// interval dt, in cycles per unit time. Returns 0 for series too short to
// transform.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	n := 1
	for 2*n <= len(data) {
		n *= 2
	}
	return float64(best) / (float64(n) * dt)
}

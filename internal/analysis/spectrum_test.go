package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/cnwave/internal/sim"
)

func TestProbeSeries(t *testing.T) {
	snaps := []sim.Snapshot{
		{T: 0, PP: []float64{1, 2, 3}},
		{T: 1, PP: []float64{4, 5, 6}},
	}

	series := ProbeSeries(snaps, 1)
	if len(series) != 2 || series[0] != 2 || series[1] != 5 {
		t.Errorf("unexpected series: %v", series)
	}
}

func TestPowerSpectrum_PureTone(t *testing.T) {
	const n = 128
	const cycles = 8

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * cycles * float64(i) / n)
	}

	ps := PowerSpectrum(data)

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != cycles {
		t.Errorf("expected peak at bin %d, got %d", cycles, peak)
	}
}

func TestDominantFrequency(t *testing.T) {
	const n = 256
	const dt = 0.01
	const freq = 5.0 // cycles per unit time

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * freq * float64(i) * dt)
	}

	got := DominantFrequency(data, dt)
	// Bin resolution is 1/(n*dt).
	if math.Abs(got-freq) > 1/(n*dt)+1e-12 {
		t.Errorf("dominant frequency: got %g, want ~%g", got, freq)
	}
}

func TestDominantFrequency_Short(t *testing.T) {
	if f := DominantFrequency([]float64{1, 2}, 0.1); f != 0 {
		t.Errorf("expected 0 for short series, got %g", f)
	}
}

func TestFFT_TruncatesToPowerOfTwo(t *testing.T) {
	data := make([]float64, 100)
	out := FFT(data)
	if len(out) != 64 {
		t.Errorf("expected 64 bins, got %d", len(out))
	}
}

package export

import (
	"strings"
	"testing"

	"github.com/san-kum/cnwave/internal/sim"
)

func TestProfileSVG(t *testing.T) {
	snap := sim.Snapshot{PP: []float64{0, 0.5, 1, 0.5, 0}}

	svg := ProfileSVG(snap, 400, 200, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("not terminated")
	}
}

func TestProfileSVG_TooShort(t *testing.T) {
	if svg := ProfileSVG(sim.Snapshot{PP: []float64{1}}, 400, 200, "#fff"); svg != "" {
		t.Error("expected empty output for single-point profile")
	}
}

func TestWaterfallSVG(t *testing.T) {
	snaps := []sim.Snapshot{
		{T: 0, PP: []float64{0, 1, 0}},
		{T: 1, PP: []float64{0.5, 0, 0.5}},
	}

	svg := WaterfallSVG(snaps, 400, 300, "#00ff00")

	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 traces, got %d", got)
	}
}

func TestWaterfallSVG_Empty(t *testing.T) {
	if svg := WaterfallSVG(nil, 400, 300, "#fff"); svg != "" {
		t.Error("expected empty output for no snapshots")
	}
}

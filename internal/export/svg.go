// Package export renders recorded runs to SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/cnwave/internal/sim"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// ProfileSVG draws one snapshot's pp profile as a polyline.
func ProfileSVG(snap sim.Snapshot, width, height int, strokeColor string) string {
	if len(snap.PP) < 2 {
		return ""
	}

	minV, maxV := snap.PP[0], snap.PP[0]
	for _, v := range snap.PP {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	n := len(snap.PP)
	for i, v := range snap.PP {
		x := float64(i) / float64(n-1) * float64(width)
		y := float64(height) - (v-minV)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// WaterfallSVG stacks every snapshot's pp profile with a vertical offset,
// earliest at the top, giving a space-time picture of the pulse.
func WaterfallSVG(snaps []sim.Snapshot, width, height int, strokeColor string) string {
	if len(snaps) == 0 || len(snaps[0].PP) < 2 {
		return ""
	}

	var maxAmp float64
	for _, snap := range snaps {
		for _, v := range snap.PP {
			if v < 0 {
				v = -v
			}
			if v > maxAmp {
				maxAmp = v
			}
		}
	}
	if maxAmp == 0 {
		maxAmp = 1
	}

	rowGap := float64(height) / float64(len(snaps)+1)
	// Each trace may use twice the row gap before clipping against its
	// neighbors becomes distracting.
	amp := rowGap * 2 / maxAmp

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(svgHeader, width, height, width, height))

	n := len(snaps[0].PP)
	for k, snap := range snaps {
		base := rowGap * float64(k+1)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="M`, strokeColor))
		for i, v := range snap.PP {
			x := float64(i) / float64(n-1) * float64(width)
			y := base - v*amp
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}

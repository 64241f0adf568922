package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pushcart/internal/dynamo"
	"github.com/san-kum/pushcart/internal/histogram"
)

const (
	PositiveFill = "#00ffff"
	NegativeFill = "#ffff00"
	svgPad       = 20
)

// TraceToSVG plots a sample log as force against position. Areas where the
// push did positive work are filled cyan, negative work yellow. The x axis
// spans the whole track and the y axis ±maxForce.
func TraceToSVG(log *histogram.Log, maxForce float64, width, height int) string {
	if log == nil || width <= 2*svgPad || height <= 2*svgPad {
		return ""
	}
	if maxForce <= 0 {
		maxForce = 1
	}

	plotW := float64(width - 2*svgPad)
	half := float64(height-2*svgPad) / 2
	mid := float64(svgPad) + half
	px := func(s dynamo.Sample) float64 {
		return float64(svgPad) + s.Position/log.TrackWidth()*plotW
	}
	py := func(s dynamo.Sample) float64 {
		v := s.Value / maxForce
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		return mid - v*half
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="#808080"/>
<line x1="%d" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#808080" stroke-dasharray="4 4"/>
`, width, height, width, height,
		svgPad, svgPad, plotW, 2*half,
		svgPad, mid, float64(svgPad)+plotW, mid))

	for _, seg := range log.Segments() {
		if len(seg.Samples) < 2 {
			continue
		}
		fill := PositiveFill
		if !seg.Positive {
			fill = NegativeFill
		}
		first, last := seg.Samples[0], seg.Samples[len(seg.Samples)-1]
		sb.WriteString(fmt.Sprintf(`<path fill="%s" fill-opacity="0.6" stroke="none" d="M%.1f,%.1f`, fill, px(first), mid))
		for _, s := range seg.Samples {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(s), py(s)))
		}
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f Z\"/>\n", px(last), mid))
	}

	samples := log.Samples()
	if len(samples) > 1 {
		sb.WriteString(`<path fill="none" stroke="#e0e0e0" stroke-width="1.5" d="M`)
		for i, s := range samples {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(s), py(s)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(s), py(s)))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

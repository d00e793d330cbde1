// Package render draws KCMC instances as Graphviz diagrams.
//
// Instances render as undirected tri-partite graphs: POIs as green
// triangles, sinks as grey squares, sensors as circles (black when
// installed by the given solution, white when offline). Coverage edges are
// green, sensor-sink edges red, sensor-sensor edges black. The DOT output
// can be rasterized to SVG or PNG through go-graphviz.
package render

import (
	"bytes"
	"fmt"

	"github.com/wsnlab/kcmc/pkg/instance"
)

// Options configures instance rendering.
type Options struct {
	// Solution marks the installed sensors; sensors outside it are drawn
	// as offline. A nil Solution draws every sensor as installed.
	Solution *instance.Set

	// HideOffline omits offline sensors and their edges entirely.
	HideOffline bool
}

// Node colors follow the palette of the project's original instance plots.
const (
	colorPOI     = "green"
	colorSensor  = "black"
	colorOffline = "white"
	colorSink    = "grey"
)

// ToDOT converts an instance to Graphviz DOT format.
// The resulting DOT string can be rendered using [ToSVG] or [ToPNG].
func ToDOT(in *instance.Instance, opts Options) string {
	installed := func(sensor int) bool {
		return opts.Solution == nil || opts.Solution.Contains(sensor)
	}
	show := func(sensor int) bool {
		return !opts.HideOffline || installed(sensor)
	}

	var buf bytes.Buffer
	buf.WriteString("graph kcmc {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=10];\n")
	buf.WriteString("\n")

	for poi := 0; poi < in.NumPOIs(); poi++ {
		fmt.Fprintf(&buf, "  \"p%d\" [shape=triangle, fillcolor=%s];\n", poi, colorPOI)
	}
	for sensor := 0; sensor < in.NumSensors(); sensor++ {
		if !show(sensor) {
			continue
		}
		color := colorSensor
		font := "white"
		if !installed(sensor) {
			color = colorOffline
			font = "black"
		}
		fmt.Fprintf(&buf, "  \"i%d\" [shape=circle, fillcolor=%s, fontcolor=%s];\n", sensor, color, font)
	}
	for sink := 0; sink < in.NumSinks(); sink++ {
		fmt.Fprintf(&buf, "  \"s%d\" [shape=square, fillcolor=%s];\n", sink, colorSink)
	}

	buf.WriteString("\n")
	for poi := 0; poi < in.NumPOIs(); poi++ {
		in.Covers(poi).Each(func(sensor int) bool {
			if show(sensor) {
				fmt.Fprintf(&buf, "  \"p%d\" -- \"i%d\" [color=%s];\n", poi, sensor, colorPOI)
			}
			return true
		})
	}
	for sensor := 0; sensor < in.NumSensors(); sensor++ {
		if !show(sensor) {
			continue
		}
		in.Neighbors(sensor).Each(func(other int) bool {
			if other > sensor && show(other) {
				fmt.Fprintf(&buf, "  \"i%d\" -- \"i%d\";\n", sensor, other)
			}
			return true
		})
		in.SinkLinks(sensor).Each(func(sink int) bool {
			fmt.Fprintf(&buf, "  \"i%d\" -- \"s%d\" [color=red];\n", sensor, sink)
			return true
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

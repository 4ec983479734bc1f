// Package viz renders step responses in the terminal.
//
// A [Chart] carries the samples together with the title and axis labels. Any
// [Plotter] can draw it:
//
//   - [Terminal]: asciigraph line chart with a labelled axis
//   - [Braille]: high-density Braille [Canvas] with an optional dot grid
//
// File output lives in the export package, which provides an SVG plotter
// satisfying the same interface.
package viz

// Package viz renders velocity histograms in the terminal.
//
// The histogram matrix is drawn as 3D bars on a braille canvas:
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [Camera] and [Render3D]: wireframe projection with rotation and zoom
//   - [BarsWireframe]: bins along X, time along Z, counts along Y
//   - [Viewer]: interactive Bubble Tea program over a matrix
//
// # Key Bindings
//
//	[ ]   - Previous/next histogram row
//	Space - Toggle spinning
//	x y z - Rotate the scene (shift reverses)
//	+ -   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
package viz

// Package viz is the terminal front end: a Bubble Tea model that steps the
// simulator on every tick and renders it with lipgloss.
//
//   - [Model]: live view with the braille particle canvas, occupancy heatmap
//     and the throttled stats panel
//   - [Canvas]: Braille-based pixel canvas
//   - [Browser]: the thermodynamics timeline strip and its popup
//   - [Recorder]: GIF capture of the canvas
//
// # Key Bindings
//
//	Up/Down     - Temperature ±10 K
//	Left/Right  - Noise ±0.1
//	+/-         - Particle count ±20
//	Space       - Pause/Resume
//	R           - Reset
//	T           - Cycle color themes
//	Y           - Timeline browser
//	G           - Toggle GIF recording
//	?           - Show help overlay
package viz

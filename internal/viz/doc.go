// Package viz draws cloth snapshots in the terminal.
//
// Positions are rasterised onto a braille [Canvas] through a [View], which
// projects world coordinates top-down, from the side, or through an orbiting
// [Camera]. [Plot] layers several snapshots (for example ring and non-ring
// particles) in different colours.
//
// [Model] is a Bubble Tea program that steps a simulation every tick and
// feeds mouse input into the cloth's pointer.
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	.      - Single step while paused
//	M      - Toggle grab/cut
//	P / U  - Pin / unpin near the pointer
//	V      - Cycle projection
//	Arrows - Orbit the camera
//	+/-    - Zoom
//	T      - Cycle colour themes
//	R      - Reset
//	?      - Help
package viz

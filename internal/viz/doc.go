// Package viz is the terminal front end built on Bubble Tea.
//
// The [Model] owns a [scene.Scene] whose surfaces are [surface.Grid] values
// sized in terminal cells. Each tick dispatches one frame, then the layers
// are composited into a screen grid: rain, particles, the sunburst on the
// home section, the section panel, overlays and the status bar.
//
// # Key Bindings
//
//	1-6, ctrl+1-6, alt+1-6 - Jump to a section
//	Tab    - Next section
//	Esc    - Home
//	O      - Toggle the section menu
//	T      - Cycle color themes
//	R      - Toggle matrix rain
//	P      - Toggle particles
//	M      - Play/pause music
//	+/-    - Volume
//	←/→/⏎  - Pick and run a hacker-lab tool
//	X      - Execute
//	G      - Toggle GIF recording
//	?      - Show help overlay
//	Q      - Quit
//
// # Recording
//
// Recordings are saved as cyberjinn.gif in the current directory.
package viz

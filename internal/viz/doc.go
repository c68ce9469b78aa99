// Package viz hosts the arena in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps a sim.Scheduler on every tick and publishes mouse
//     presses and releases as pointer events
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [Surface]: maps arena units onto canvas sub-pixels
//
// # Key Bindings
//
//	Drag  - Slingshot a disc
//	Space - Pause/Resume simulation
//	R     - Re-layout the grid
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz

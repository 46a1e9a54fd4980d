// Package viz renders a live chamber in the terminal.
//
// [Model] is a Bubble Tea program that steps the simulation once per frame
// and draws the distortion grid and bodies on a braille [Canvas]. Colors
// come from one of five themes.
//
// # Key Bindings
//
//	P     - Spawn a planet
//	S     - Spawn a star
//	C     - Clear all bodies
//	G     - Toggle the distortion grid
//	Space - Pause/Resume simulation
//	T     - Cycle color themes
//	Q     - Quit
package viz

// Package viz previews a trajectory animation in the terminal.
//
// Frames are the same decimated columns the video encoder receives. Trails
// are drawn on a Braille [Canvas] (2x4 dots per cell) with the viewport
// mapped at equal scale on both axes, and coloured per body.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	[ ]   - Step one frame back/forward (pauses)
//	Q     - Quit
package viz

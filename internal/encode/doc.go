// Package encode serialises rendered frames into a video file.
//
// Frames are written one at a time, in order. The [FFmpeg] encoder pipes
// PNG frames into an ffmpeg child process; the [GIF] encoder buffers
// paletted frames and writes an animated GIF on Close. [New] picks one by
// the output file extension.
package encode

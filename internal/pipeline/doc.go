// Package pipeline runs the load, decimate, render and encode steps for one
// input file.
//
// Frames are produced strictly in order, one at a time: each frame's traces
// are built, rasterised and handed to the encoder before the next frame
// starts. All intermediate state is passed explicitly between steps.
package pipeline

// Package timeline maps a sampled position series onto a fixed number of
// video frames.
//
// Two playback modes are supported:
//
//   - [Fixed]: the whole series plays in a set wall-clock duration, so the
//     stride is total samples divided by the frame count.
//   - [Realtime]: one second of video covers one unit of simulated time, so
//     the stride is the frame interval divided by the sample spacing.
//
// Decimation keeps every step-th column, starting at column 0, and never
// mutates its input.
package timeline

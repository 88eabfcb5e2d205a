// Package analysis summarises a trajectory table before it is rendered.
//
// [Summarize] reports, per body, the bounding box, the fraction of samples
// inside the viewport, the path length and the dominant period of the x
// series. Bodies that spend time outside the viewport are silently clipped
// in the video, so the inside fraction is the first thing to look at when a
// trail seems to vanish.
//
//	s := analysis.Summarize(table, render.DefaultViewport())
//	analysis.Report(os.Stdout, s, table, render.DefaultPalette())
package analysis

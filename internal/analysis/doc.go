// Package analysis turns particle positions into numbers.
//
//   - [Grid]: the cols x rows histogram over the region
//   - [NormalizedEntropy]: Shannon entropy of the occupancy divided by ln(cells)
//   - [Shade]: per-cell intensity used by the heatmaps
//   - [PowerSpectrum], [DominantPeriod], [Summarize]: post-run series analysis
//
// # Measuring a frame
//
//	g := analysis.NewGrid(b, analysis.DefaultGridCols)
//	sample, occupancy := analysis.Measure(g, ens, 300)
package analysis

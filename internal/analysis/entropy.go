package analysis

import (
	"math"

	"github.com/san-kum/entropylab/internal/dynamo"
)

const DefaultGridCols = 20

// Grid partitions the region into Cols x Rows equal cells. Rows follow the
// region's aspect ratio so cells stay roughly square.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float64
}

func NewGrid(b dynamo.Bounds, cols int) Grid {
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Floor(float64(cols) * b.Aspect()))
	if rows < 1 {
		rows = 1
	}
	return Grid{
		Cols:  cols,
		Rows:  rows,
		CellW: b.Width / float64(cols),
		CellH: b.Height / float64(rows),
	}
}

func (g Grid) Size() int { return g.Cols * g.Rows }

// Cell maps a coordinate to its column and row, clamped to the last valid
// index so points on (or past) the far edge still land in the grid.
func (g Grid) Cell(x, y float64) (int, int) {
	return clampIndex(x/g.CellW, g.Cols), clampIndex(y/g.CellH, g.Rows)
}

func (g Grid) Index(x, y float64) int {
	cx, cy := g.Cell(x, y)
	return cx + cy*g.Cols
}

func (g Grid) Occupancy(ens dynamo.Ensemble) []int {
	bins := make([]int, g.Size())
	for _, p := range ens {
		bins[g.Index(p.X, p.Y)]++
	}
	return bins
}

// ShannonEntropy is -sum p ln p over the non-empty bins, p = count/total.
func ShannonEntropy(counts []int, total int) float64 {
	if total <= 0 {
		return 0
	}
	s := 0.0
	n := float64(total)
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / n
			s -= p * math.Log(p)
		}
	}
	return s
}

// NormalizedEntropy divides by ln(len(counts)), the entropy of a uniform
// spread over every cell.
func NormalizedEntropy(counts []int, total int) float64 {
	if total <= 0 || len(counts) <= 1 {
		return 0
	}
	return ShannonEntropy(counts, total) / math.Log(float64(len(counts)))
}

// Measure runs the entropy stage for one frame.
func Measure(g Grid, ens dynamo.Ensemble, temperature float64) (dynamo.Sample, []int) {
	bins := g.Occupancy(ens)
	return dynamo.Sample{
		Temperature: temperature,
		Entropy:     NormalizedEntropy(bins, len(ens)),
		Count:       len(ens),
	}, bins
}

// Shade is the display intensity of a cell, 1 once it holds the count an
// even spread over the columns would give.
func Shade(count, total, cols int) float64 {
	if total <= 0 || cols <= 0 {
		return 0
	}
	return math.Min(1, float64(count)/(float64(total)/float64(cols)))
}

func clampIndex(v float64, n int) int {
	i := int(math.Floor(v))
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

package aeff

import "go-hep.org/x/hep/hbook"

// Grid2D is the binning capability BinCounter fills and reads back.  Bin
// indices follow the ROOT convention on both axes: index 0 is the underflow
// bin, in-range bins are numbered 1..n, and index n+1 is the overflow bin.
type Grid2D interface {
	// Fill adds a weight-w entry at (x, y).
	Fill(x, y, w float64)
	// BinContent returns the summed weight in bin (ix, iy).
	BinContent(ix, iy int) float64
	// Dims returns the number of in-range bins on each axis.
	Dims() (nx, ny int)
}

// hbookGrid backs Grid2D with an hbook 2-D histogram over variable-width
// bin edges.  hbook aggregates out-of-range entries internally, so the
// adapter keeps its own 3x3 outflow tally to serve the ROOT-style
// under/overflow indices.
type hbookGrid struct {
	h              *hbook.H2D
	xedges, yedges BinEdges
	out            [3][3]float64 // [x-region][y-region], region 1 unused for (1,1)
}

// NewGrid returns a Grid2D over the given edges, backed by hbook.  The
// edges must already be validated.
func NewGrid(xedges, yedges BinEdges) Grid2D {
	return &hbookGrid{
		h:      hbook.NewH2DFromEdges([]float64(xedges), []float64(yedges)),
		xedges: xedges,
		yedges: yedges,
	}
}

// region classifies v against the edges: 0 below, 1 in range, 2 above.
func region(edges BinEdges, v float64) int {
	switch {
	case v < edges.Min():
		return 0
	case v >= edges.Max():
		return 2
	}
	return 1
}

func (g *hbookGrid) Fill(x, y, w float64) {
	rx, ry := region(g.xedges, x), region(g.yedges, y)
	if rx != 1 || ry != 1 {
		g.out[rx][ry] += w
		return
	}
	g.h.Fill(x, y, w)
}

func (g *hbookGrid) BinContent(ix, iy int) float64 {
	nx, ny := g.Dims()
	rx, ry := 1, 1
	switch {
	case ix <= 0:
		rx = 0
	case ix > nx:
		rx = 2
	}
	switch {
	case iy <= 0:
		ry = 0
	case iy > ny:
		ry = 2
	}
	if rx != 1 || ry != 1 {
		return g.out[rx][ry]
	}
	return g.h.GridXYZ().Z(ix-1, iy-1)
}

func (g *hbookGrid) Dims() (int, int) {
	return g.xedges.NBins(), g.yedges.NBins()
}

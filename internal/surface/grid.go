package surface

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	brailleLast = 0x28ff
)

// Cell is one terminal cell: a rune painted at straight alpha.
type Cell struct {
	Rune  rune
	Color colorful.Color
	Alpha float64
}

func (c Cell) blank() bool {
	return c.Alpha <= 0 || c.Rune == 0 || c.Rune == ' ' || c.Rune == brailleBase
}

func isBraille(r rune) bool { return r >= brailleBase && r <= brailleLast }

// Grid is a Surface made of terminal cells. Each cell covers cellW x cellH
// surface units and holds 2x4 braille sub-pixels for strokes.
type Grid struct {
	cellW, cellH int
	w, h         int
	cols, rows   int
	cells        [][]Cell
}

// NewGrid returns an empty grid with the given cell size in surface units.
func NewGrid(cellW, cellH int) *Grid {
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	return &Grid{cellW: cellW, cellH: cellH}
}

func (g *Grid) Size() (int, int)         { return g.w, g.h }
func (g *Grid) Cols() int                { return g.cols }
func (g *Grid) Rows() int                { return g.rows }
func (g *Grid) CellSize() (int, int)     { return g.cellW, g.cellH }
func (g *Grid) Cell(col, row int) Cell   { return g.cells[row][col] }
func (g *Grid) inside(col, row int) bool { return col >= 0 && row >= 0 && col < g.cols && row < g.rows }

// Resize reallocates the cells; content is discarded.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	g.cols, g.rows = w/g.cellW, h/g.cellH
	g.cells = make([][]Cell, g.rows)
	for i := range g.cells {
		g.cells[i] = make([]Cell, g.cols)
	}
}

func (g *Grid) Fill(c colorful.Color, alpha float64) {
	alpha = clamp01(alpha)
	for i := range g.cells {
		for j := range g.cells[i] {
			cell := &g.cells[i][j]
			if alpha >= 1 {
				*cell = Cell{Rune: ' ', Color: c, Alpha: 1}
				continue
			}
			cell.Color, cell.Alpha = over(c, alpha, cell.Color, cell.Alpha)
			if cell.Rune == 0 {
				cell.Rune = ' '
			}
		}
	}
}

// Clear resets the grid
func (g *Grid) Clear() {
	for i := range g.cells {
		for j := range g.cells[i] {
			g.cells[i][j] = Cell{}
		}
	}
}

// DrawGlyph paints r into the cell whose bottom edge is the baseline y.
// Baselines at or above the top edge are invisible.
func (g *Grid) DrawGlyph(x, y int, r rune, c colorful.Color) {
	if x < 0 || y <= 0 {
		return
	}
	col, row := x/g.cellW, (y-1)/g.cellH
	if !g.inside(col, row) {
		return
	}
	g.cells[row][col] = Cell{Rune: r, Color: c, Alpha: 1}
}

// Dot sets a braille sub-pixel at (px, py) in sub-pixel coordinates. The
// grid is (Cols*2) x (Rows*4) sub-pixels. A cell holding a text glyph is
// converted to braille.
func (g *Grid) Dot(px, py int, c colorful.Color, alpha float64) {
	if px < 0 || py < 0 || alpha <= 0 {
		return
	}
	col, row := px/2, py/4
	if !g.inside(col, row) {
		return
	}
	cell := &g.cells[row][col]
	if !isBraille(cell.Rune) {
		cell.Rune, cell.Alpha = brailleBase, 0
	}
	cell.Rune |= pixelMap[py%4][px%2]
	if alpha > cell.Alpha {
		cell.Color, cell.Alpha = c, alpha
	}
}

// StrokeLine rasterises the segment onto braille sub-pixels using
// Bresenham's algorithm, sampling the gradient along its length. Strokes are
// one sub-pixel wide; width is accepted for interface parity.
func (g *Grid) StrokeLine(x0, y0, x1, y1, width float64, grad Gradient) {
	sw, sh := float64(g.cellW)/2, float64(g.cellH)/4
	ax, ay := int(math.Floor(x0/sw)), int(math.Floor(y0/sh))
	bx, by := int(math.Floor(x1/sw)), int(math.Floor(y1/sh))

	dx := absInt(bx - ax)
	dy := absInt(by - ay)
	steps := dx
	if dy > steps {
		steps = dy
	}
	sx := -1
	if ax < bx {
		sx = 1
	}
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c, a := grad.At(t)
		g.Dot(ax, ay, c, a)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// Blit copies visible cells of src onto g with src's top-left at (col, row).
// A source cell only replaces a destination cell that is blank or fainter.
func (g *Grid) Blit(src *Grid, col, row int) {
	for r := 0; r < src.rows; r++ {
		for c := 0; c < src.cols; c++ {
			sc := src.cells[r][c]
			if sc.blank() || !g.inside(col+c, row+r) {
				continue
			}
			dc := &g.cells[row+r][col+c]
			if dc.blank() || sc.Alpha >= dc.Alpha {
				*dc = sc
			}
		}
	}
}

// Set replaces one cell; out-of-range positions are ignored.
func (g *Grid) Set(col, row int, c Cell) {
	if g.inside(col, row) {
		g.cells[row][col] = c
	}
}

// PutText writes s starting at (col, row) in cell coordinates, clipping at
// the grid edge. Spaces overwrite.
func (g *Grid) PutText(col, row int, s string, c colorful.Color) {
	for _, r := range s {
		if g.inside(col, row) {
			g.cells[row][col] = Cell{Rune: r, Color: c, Alpha: 1}
		}
		col++
	}
}

// Coverage is the fraction of cells holding something visible.
func (g *Grid) Coverage() float64 {
	if g.cols == 0 || g.rows == 0 {
		return 0
	}
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if !cell.blank() {
				n++
			}
		}
	}
	return float64(n) / float64(g.cols*g.rows)
}

// Hash summarises runes, colors and alpha of every cell.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, row := range g.cells {
		for _, cell := range row {
			r, gr, b := cell.Color.Clamped().RGB255()
			buf[0], buf[1], buf[2], buf[3] = byte(cell.Rune), byte(cell.Rune>>8), byte(cell.Rune>>16), r
			buf[4], buf[5], buf[6], buf[7] = gr, b, byte(cell.Alpha*255), 0
			h.Write(buf)
		}
	}
	return h.Sum64()
}

// visible returns the cell's rune and its color composited over bg, or a
// space when the cell is indistinguishable from the background.
func (c Cell) visible(bg colorful.Color) (rune, colorful.Color) {
	if c.blank() {
		return ' ', bg
	}
	final, _ := over(c.Color, c.Alpha, bg, 1)
	if final.DistanceRgb(bg) < 0.02 {
		return ' ', bg
	}
	return c.Rune, final
}

// Render draws the grid as styled text over bg, batching runs of cells that
// share a color.
func (g *Grid) Render(bg colorful.Color) string {
	var b strings.Builder
	var run strings.Builder
	for i, row := range g.cells {
		cur := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range row {
			r, col := cell.visible(bg)
			key := ""
			if r != ' ' {
				key = col.Clamped().Hex()
			}
			if key != cur {
				flush()
				cur = key
			}
			run.WriteRune(r)
		}
		flush()
		if i < len(g.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String returns the grid runes without styling.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.blank() {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(cell.Rune)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

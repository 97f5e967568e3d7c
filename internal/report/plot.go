package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series is a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

type valueRange struct {
	min float64
	max float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelBottom     = "min"
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see min/max below."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// PlotOptions sizes a plot. Zero values pick defaults.
type PlotOptions struct {
	Width      int
	Height     int
	ForceColor bool
	Unit       string
}

// PlotSeries renders the series as braille line charts sharing one grid.
func PlotSeries(w io.Writer, title string, series []Series, opts PlotOptions) error {
	series = nonEmpty(series)
	if len(series) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	ranges := make([]valueRange, len(series))
	grids := make([][][]uint8, len(series))
	for si, s := range series {
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		if math.Abs(hi-lo) < 1e-9 {
			lo--
			hi++
		}
		ranges[si] = valueRange{min: lo, max: hi}
		grids[si] = makeCells(height, width)
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for x, v := range values {
			px, py := x*2, valueToRow(v, lo, hi, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(grids[si], dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				setBrailleDot(grids[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, opts.ForceColor)
	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	b.WriteString(scaleNote + "\n")
	for i, s := range series {
		fmt.Fprintf(&b, "%s: min=%.2f%s max=%.2f%s\n", s.Name, ranges[i].min, opts.Unit, ranges[i].max, opts.Unit)
	}
	labelWidth := runewidth.StringWidth(axisLabelTop)
	for y := 0; y < height; y++ {
		label := ""
		switch {
		case y == 0:
			label = axisLabelTop
		case y == height-1:
			label = axisLabelBottom
		}
		b.WriteString(runewidth.FillLeft(label, labelWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(grids, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && owner >= 0 {
				b.WriteString(colorPalette[owner%len(colorPalette)])
				b.WriteRune(ch)
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	b.WriteString(legend(series, useColor) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor computes a plot width that fits within totalWidth columns.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - runewidth.StringWidth(axisLabelTop) - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		return minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func nonEmpty(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges the dots of every series; the first series drawn in a
// cell owns its colour.
func composeCell(grids [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range grids {
		m := cells[y][x]
		if m == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= m
	}
	return mask, owner
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

func valueToRow(v, lo, hi float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return max(0, min(rows-1, row))
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine walks a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleDots[x%2][y%4]
}

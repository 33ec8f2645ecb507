package scope

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"gonum.org/v1/plot"
)

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	gridColor       = color.RGBA{R: 45, G: 45, B: 45, A: 255}
	axisTextColor   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	titleColor      = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// Plot area margins
const (
	marginLeft   = float32(60)
	marginRight  = float32(20)
	marginTop    = float32(26)
	marginBottom = float32(36)
)

// seriesRenderer renders the Series widget.
type seriesRenderer struct {
	series *Series

	background *canvas.Rectangle
	objects    []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *seriesRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 160)
}

// Layout arranges the widget components.
func (r *seriesRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.series.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the plot from the current data.
func (r *seriesRenderer) Refresh() {
	r.series.mu.RLock()
	xs := r.series.xs
	ys := r.series.ys
	xMin, xMax := r.series.xMin, r.series.xMax
	yMin, yMax := r.series.yMin, r.series.yMax
	r.series.mu.RUnlock()

	r.objects = []fyne.CanvasObject{r.background}

	size := r.series.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	area := plotArea{
		x:    marginLeft,
		y:    marginTop,
		w:    size.Width - marginLeft - marginRight,
		h:    size.Height - marginTop - marginBottom,
		xMin: xMin, xMax: xMax,
		yMin: yMin, yMax: yMax,
	}
	if area.w <= 0 || area.h <= 0 {
		return
	}

	r.drawGrid(area)
	r.drawLine(area, xs, ys)
	r.drawText(area, size)
}

// plotArea maps data coordinates to widget coordinates.
type plotArea struct {
	x, y, w, h float32
	xMin, xMax float64
	yMin, yMax float64
}

func (a plotArea) pos(x, y float64) fyne.Position {
	px := a.x + float32((x-a.xMin)/(a.xMax-a.xMin))*a.w
	py := a.y + a.h - float32((y-a.yMin)/(a.yMax-a.yMin))*a.h
	return fyne.NewPos(px, py)
}

// hasSpan reports whether lo..hi is a usable, finite axis range.
func hasSpan(lo, hi float64) bool {
	span := hi - lo
	return span > 0 && !math.IsInf(span, 0)
}

// drawGrid draws grid lines and labels at the major ticks of both axes.
func (r *seriesRenderer) drawGrid(a plotArea) {
	var ticker plot.DefaultTicks

	if hasSpan(a.yMin, a.yMax) {
		r.drawYTicks(a, ticker.Ticks(a.yMin, a.yMax))
	}
	if hasSpan(a.xMin, a.xMax) {
		r.drawXTicks(a, ticker.Ticks(a.xMin, a.xMax))
	}
}

func (r *seriesRenderer) drawYTicks(a plotArea, ticks []plot.Tick) {
	for _, tick := range ticks {
		if tick.IsMinor() || tick.Value < a.yMin || tick.Value > a.yMax {
			continue
		}
		p := a.pos(a.xMin, tick.Value)
		r.addLine(gridColor, 1, fyne.NewPos(a.x, p.Y), fyne.NewPos(a.x+a.w, p.Y))

		text := canvas.NewText(tick.Label, axisTextColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(a.x-5, p.Y-7))
		r.objects = append(r.objects, text)
	}
}

func (r *seriesRenderer) drawXTicks(a plotArea, ticks []plot.Tick) {
	for _, tick := range ticks {
		if tick.IsMinor() || tick.Value < a.xMin || tick.Value > a.xMax {
			continue
		}
		p := a.pos(tick.Value, a.yMin)
		r.addLine(gridColor, 1, fyne.NewPos(p.X, a.y), fyne.NewPos(p.X, a.y+a.h))

		text := canvas.NewText(tick.Label, axisTextColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(p.X-10, a.y+a.h+3))
		r.objects = append(r.objects, text)
	}
}

// drawLine draws the data as connected segments. Segments touching a
// non-finite point are left out.
func (r *seriesRenderer) drawLine(a plotArea, xs, ys []float64) {
	if !hasSpan(a.xMin, a.xMax) || !hasSpan(a.yMin, a.yMax) {
		return
	}
	n := min(len(xs), len(ys))
	for i := 1; i < n; i++ {
		if !isFinite(xs[i-1]) || !isFinite(ys[i-1]) || !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		r.addLine(r.series.color, 1.5, a.pos(xs[i-1], ys[i-1]), a.pos(xs[i], ys[i]))
	}
}

// drawText draws the title, the legend and the x axis label.
func (r *seriesRenderer) drawText(a plotArea, size fyne.Size) {
	title := canvas.NewText(r.series.title, titleColor)
	title.TextSize = 13
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	title.Move(fyne.NewPos(size.Width/2, 4))
	r.objects = append(r.objects, title)

	legend := canvas.NewText(r.series.label, r.series.color)
	legend.TextSize = 11
	legend.Alignment = fyne.TextAlignTrailing
	legend.Move(fyne.NewPos(a.x+a.w-4, a.y+4))
	r.objects = append(r.objects, legend)

	xLabel := canvas.NewText("Time (s)", axisTextColor)
	xLabel.TextSize = 10
	xLabel.Alignment = fyne.TextAlignCenter
	xLabel.Move(fyne.NewPos(a.x+a.w/2, size.Height-16))
	r.objects = append(r.objects, xLabel)
}

func (r *seriesRenderer) addLine(c color.Color, width float32, p1, p2 fyne.Position) {
	line := canvas.NewLine(c)
	line.Position1 = p1
	line.Position2 = p2
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

// Objects returns all canvas objects for rendering.
func (r *seriesRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *seriesRenderer) Destroy() {}

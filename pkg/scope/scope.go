package scope

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const defaultMaxDisplayPoints = 1000

// Series is a custom Fyne widget that plots one value sequence against time.
type Series struct {
	widget.BaseWidget

	title string
	label string // Axis label and legend, e.g. "Voltage (V)"
	color color.Color

	// Display data (protected by mu)
	mu sync.RWMutex
	xs []float64
	ys []float64

	// Auto-scaling, always computed on the full data
	xMin, xMax float64
	yMin, yMax float64

	maxDisplayPoints int
}

// NewSeries creates a new Series widget.
func NewSeries(title, label string, c color.Color) *Series {
	s := &Series{
		title:            title,
		label:            label,
		color:            c,
		xs:               make([]float64, 0, defaultMaxDisplayPoints),
		ys:               make([]float64, 0, defaultMaxDisplayPoints),
		maxDisplayPoints: defaultMaxDisplayPoints,
	}
	s.xMin, s.xMax = XLimits(nil)
	s.yMin, s.yMax = YLimits(nil)
	s.ExtendBaseWidget(s)
	return s
}

// SetData replaces the plotted points and rescales both axes.
// Must be called on the Fyne main thread.
func (s *Series) SetData(xs, ys []float64) {
	s.mu.Lock()

	s.xMin, s.xMax = XLimits(xs)
	s.yMin, s.yMax = YLimits(ys)

	n := min(len(xs), len(ys))
	s.xs = Downsample(s.xs, xs[:n], s.maxDisplayPoints)
	s.ys = Downsample(s.ys, ys[:n], s.maxDisplayPoints)

	s.mu.Unlock()

	// Refresh outside the lock, the renderer takes a read lock
	s.Refresh()
}

// Limits returns the current axis ranges.
func (s *Series) Limits() (xMin, xMax, yMin, yMax float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xMin, s.xMax, s.yMin, s.yMax
}

// Points returns a copy of the displayed points.
func (s *Series) Points() (xs, ys []float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.xs...), append([]float64(nil), s.ys...)
}

// CreateRenderer creates the widget renderer.
func (s *Series) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(backgroundColor)
	return &seriesRenderer{
		series:     s,
		background: background,
		objects:    []fyne.CanvasObject{background},
	}
}

package scope

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gridscope/pkg/telemetry"
	"github.com/itohio/gridscope/pkg/window"
)

func TestSeries_SetData(t *testing.T) {
	test.NewTempApp(t)

	s := NewSeries("Voltage", "Voltage (V)", voltageColor)
	s.SetData([]float64{0, 1, 2}, []float64{5, 5, 5})

	xMin, xMax, yMin, yMax := s.Limits()
	assert.Equal(t, 0.0, xMin)
	assert.Equal(t, 2.0, xMax)
	assert.Equal(t, 3.0, yMin)
	assert.Equal(t, 7.0, yMax)

	xs, ys := s.Points()
	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Equal(t, []float64{5, 5, 5}, ys)
}

func TestSeries_SetDataDownsamplesDisplayOnly(t *testing.T) {
	test.NewTempApp(t)

	s := NewSeries("Current", "Current (A)", currentColor)
	s.maxDisplayPoints = 10

	xs := make([]float64, 100)
	ys := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = float64(i % 7)
	}
	ys[42] = 100 // Spike that decimation skips

	s.SetData(xs, ys)

	gotX, gotY := s.Points()
	assert.Len(t, gotX, 10)
	assert.Len(t, gotY, 10)

	_, _, _, yMax := s.Limits()
	assert.Equal(t, 101.0, yMax, "limits use full data")
}

func TestSeries_Renderer(t *testing.T) {
	test.NewTempApp(t)

	s := NewSeries("Temperature", "Temperature (°C)", temperatureColor)
	s.Resize(fyne.NewSize(400, 200))
	s.SetData([]float64{0, 1, 2, 3}, []float64{20, 21, 22, 21})

	r := test.WidgetRenderer(s)
	r.Layout(s.Size())
	r.Refresh()

	var lines, dataLines int
	var texts []string
	for _, obj := range r.Objects() {
		switch o := obj.(type) {
		case *canvas.Line:
			lines++
			if o.StrokeColor == temperatureColor {
				dataLines++
			}
		case *canvas.Text:
			texts = append(texts, o.Text)
		}
	}

	assert.Equal(t, 3, dataLines, "one segment per consecutive pair")
	assert.Greater(t, lines, dataLines, "grid lines drawn")
	assert.Contains(t, texts, "Temperature")
	assert.Contains(t, texts, "Temperature (°C)")
	assert.Contains(t, texts, "Time (s)")
	assert.GreaterOrEqual(t, r.MinSize().Width, float32(320))
}

func countDataLines(r fyne.WidgetRenderer, c any) int {
	var n int
	for _, obj := range r.Objects() {
		if l, ok := obj.(*canvas.Line); ok && l.StrokeColor == c {
			n++
		}
	}
	return n
}

func TestSeries_RendererExtremeValues(t *testing.T) {
	test.NewTempApp(t)

	xs := make([]float64, 100)
	ys := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i) / 10
		ys[i] = 1e17
	}

	s := NewSeries("Voltage", "Voltage (V)", voltageColor)
	s.Resize(fyne.NewSize(400, 200))

	r := test.WidgetRenderer(s)
	assert.NotPanics(t, func() {
		s.SetData(xs, ys)
		r.Refresh()
	})

	_, _, yMin, yMax := s.Limits()
	assert.Less(t, yMin, yMax)
	assert.Equal(t, 99, countDataLines(r, voltageColor))

	ys[0], ys[99] = -math.MaxFloat64, math.MaxFloat64
	assert.NotPanics(t, func() {
		s.SetData(xs, ys)
		r.Refresh()
	})
}

func TestSeries_RendererNonFinite(t *testing.T) {
	test.NewTempApp(t)

	s := NewSeries("Current", "Current (A)", currentColor)
	s.Resize(fyne.NewSize(400, 200))
	r := test.WidgetRenderer(s)

	assert.NotPanics(t, func() {
		s.SetData([]float64{0, 1, 2, 3}, []float64{0, math.Inf(1), 2, math.NaN()})
		r.Refresh()
	})

	_, _, yMin, yMax := s.Limits()
	assert.Equal(t, -1.0, yMin)
	assert.Equal(t, 3.0, yMax)
	assert.Equal(t, 0, countDataLines(r, currentColor), "segments touching Inf or NaN are skipped")

	s.SetData([]float64{0, 1, 2}, []float64{math.Inf(-1), math.Inf(1), math.NaN()})
	r.Refresh()
	_, _, yMin, yMax = s.Limits()
	assert.Equal(t, -1.0, yMin)
	assert.Equal(t, 1.0, yMax)
}

func TestSeries_RendererZeroSize(t *testing.T) {
	test.NewTempApp(t)

	s := NewSeries("Voltage", "Voltage (V)", voltageColor)
	s.SetData([]float64{0, 0}, []float64{0, 0})

	r := test.WidgetRenderer(s)
	r.Refresh()
	assert.Len(t, r.Objects(), 1, "only background without a size")
}

func TestDashboard_Apply(t *testing.T) {
	test.NewTempApp(t)

	d := NewDashboard("Power Grid Monitoring Dashboard")
	require.NotNil(t, d.Content())

	w := window.New(3)
	w.Push(telemetry.Reading{telemetry.Voltage: 10, telemetry.Current: 1, telemetry.Temperature: 20}, 1)
	w.Push(telemetry.Reading{telemetry.Voltage: 12, telemetry.Current: 1.5, telemetry.Temperature: 21}, 2)

	d.apply(w.Snapshot())

	_, vs := d.Voltage.Points()
	_, cs := d.Current.Points()
	ts, temps := d.Temperature.Points()
	assert.Equal(t, []float64{0, 10, 12}, vs)
	assert.Equal(t, []float64{0, 1, 1.5}, cs)
	assert.Equal(t, []float64{0, 20, 21}, temps)
	assert.Equal(t, []float64{0, 1, 2}, ts)

	_, _, yMin, yMax := d.Voltage.Limits()
	assert.Equal(t, -1.0, yMin)
	assert.Equal(t, 13.0, yMax)
}

func TestDashboard_RenderAfterClose(t *testing.T) {
	test.NewTempApp(t)

	d := NewDashboard("test")
	d.Close()
	d.Close()

	w := window.New(2)
	w.Push(telemetry.Reading{telemetry.Voltage: 1}, 1)

	// Must return without touching the UI
	d.Render(w)

	_, vs := d.Voltage.Points()
	assert.Empty(t, vs)
}

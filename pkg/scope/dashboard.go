package scope

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gridscope/pkg/window"
)

var (
	voltageColor     = color.RGBA{R: 70, G: 130, B: 255, A: 255} // Blue
	currentColor     = color.RGBA{R: 40, G: 190, B: 60, A: 255}  // Green
	temperatureColor = color.RGBA{R: 240, G: 60, B: 60, A: 255}  // Red
)

// Dashboard stacks the voltage, current and temperature plots under a heading.
type Dashboard struct {
	Voltage     *Series
	Current     *Series
	Temperature *Series

	content fyne.CanvasObject

	stop     chan struct{}
	stopOnce sync.Once
}

// NewDashboard creates the three plots.
func NewDashboard(title string) *Dashboard {
	d := &Dashboard{
		Voltage:     NewSeries("Voltage", "Voltage (V)", voltageColor),
		Current:     NewSeries("Current", "Current (A)", currentColor),
		Temperature: NewSeries("Temperature", "Temperature (°C)", temperatureColor),
		stop:        make(chan struct{}),
	}

	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	d.content = container.NewBorder(
		heading,
		nil,
		nil,
		nil,
		container.NewGridWithRows(3, d.Voltage, d.Current, d.Temperature),
	)

	return d
}

// Content returns the canvas object to place in a window.
func (d *Dashboard) Content() fyne.CanvasObject {
	return d.content
}

// Render redraws all plots from w. The update is applied on the Fyne main
// thread and Render waits for it, so the repaint is queued before it returns.
// After Close, Render does nothing.
func (d *Dashboard) Render(w *window.Window) {
	select {
	case <-d.stop:
		return
	default:
	}

	snap := w.Snapshot()
	done := make(chan struct{})
	fyne.Do(func() {
		d.apply(snap)
		close(done)
	})

	select {
	case <-done:
	case <-d.stop:
	}
}

// Close detaches the dashboard from the UI. Safe to call more than once.
func (d *Dashboard) Close() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}

// apply must run on the Fyne main thread.
func (d *Dashboard) apply(snap window.Snapshot) {
	d.Voltage.SetData(snap.Time, snap.Voltage)
	d.Current.SetData(snap.Time, snap.Current)
	d.Temperature.SetData(snap.Time, snap.Temperature)
}

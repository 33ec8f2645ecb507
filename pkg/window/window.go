// Package window holds the fixed-length rolling buffer that drives the plots.
package window

import "github.com/itohio/gridscope/pkg/telemetry"

// DefaultSize is the number of readings kept when no size is given.
const DefaultSize = 100

// Window keeps the last N readings as four parallel sequences.
//
// Internally every sequence is a ring buffer sharing one write cursor, so a
// push overwrites the oldest slot in O(1). Externally the accessors return
// ordered copies, oldest first and newest last. All sequences always hold
// exactly N values; a new window is filled with zeros.
type Window struct {
	size int
	head int // Index of the oldest element, also the next slot to overwrite

	time        []float64
	voltage     []float64
	current     []float64
	temperature []float64
}

// Snapshot is an ordered copy of all four sequences.
type Snapshot struct {
	Time        []float64
	Voltage     []float64
	Current     []float64
	Temperature []float64
}

// New creates a zero-filled window holding size readings.
func New(size int) *Window {
	if size <= 0 {
		size = DefaultSize
	}
	return &Window{
		size:        size,
		time:        make([]float64, size),
		voltage:     make([]float64, size),
		current:     make([]float64, size),
		temperature: make([]float64, size),
	}
}

// Len returns the fixed length of every sequence.
func (w *Window) Len() int {
	return w.size
}

// Push appends one reading taken elapsed seconds after start and evicts the oldest.
// Labels missing from the reading are stored as 0.
func (w *Window) Push(r telemetry.Reading, elapsed float64) {
	w.time[w.head] = elapsed
	w.voltage[w.head] = r.Get(telemetry.Voltage)
	w.current[w.head] = r.Get(telemetry.Current)
	w.temperature[w.head] = r.Get(telemetry.Temperature)

	w.head++
	if w.head == w.size {
		w.head = 0
	}
}

// Time returns the elapsed-seconds sequence.
func (w *Window) Time() []float64 {
	return w.ordered(w.time)
}

// Voltage returns the voltage sequence.
func (w *Window) Voltage() []float64 {
	return w.ordered(w.voltage)
}

// Current returns the current sequence.
func (w *Window) Current() []float64 {
	return w.ordered(w.current)
}

// Temperature returns the temperature sequence.
func (w *Window) Temperature() []float64 {
	return w.ordered(w.temperature)
}

// Snapshot copies all sequences at once.
func (w *Window) Snapshot() Snapshot {
	return Snapshot{
		Time:        w.Time(),
		Voltage:     w.Voltage(),
		Current:     w.Current(),
		Temperature: w.Temperature(),
	}
}

// ordered unrolls a ring buffer into a new slice, oldest first.
func (w *Window) ordered(ring []float64) []float64 {
	dst := make([]float64, w.size)
	n := copy(dst, ring[w.head:])
	copy(dst[n:], ring[:w.head])
	return dst
}

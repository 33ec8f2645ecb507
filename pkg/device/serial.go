package device

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the rate the meter firmware talks at.
	DefaultBaudRate = 9600
	// DefaultReadTimeout bounds a single ReadLine call.
	DefaultReadTimeout = time.Second

	readChunk = 256
)

// ErrNotOpen is returned when reading from a closed device.
var ErrNotOpen = errors.New("device not open")

// Port is the subset of serial.Port the device needs.
type Port interface {
	io.ReadCloser
	SetReadTimeout(t time.Duration) error
}

// OpenFunc opens a named port.
type OpenFunc func(name string, mode *serial.Mode) (Port, error)

func openSerial(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}

// PortInfo describes a serial port found on the system.
type PortInfo struct {
	Name        string
	Description string
}

// Serial is a telemetry source on a serial port.
type Serial struct {
	port        string
	baudRate    int
	readTimeout time.Duration
	open        OpenFunc

	mu      sync.Mutex
	conn    Port
	pending []byte // Bytes read but not yet returned as a line
	buf     []byte
}

// New creates a new Serial instance for the given port, baud rate and read timeout.
func New(port string, baudRate int, readTimeout time.Duration) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	return &Serial{
		port:        port,
		baudRate:    baudRate,
		readTimeout: readTimeout,
		open:        openSerial,
		buf:         make([]byte, readChunk),
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]PortInfo, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]PortInfo, 0, len(names))
	for _, name := range names {
		result = append(result, PortInfo{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Name returns the port path.
func (d *Serial) Name() string {
	return d.port
}

// Open opens the serial port.
func (d *Serial) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		return fmt.Errorf("already open")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	conn, err := d.open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	if err := conn.SetReadTimeout(d.readTimeout); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", d.port, err)
	}

	d.conn = conn
	d.pending = d.pending[:0]

	return nil
}

// Close closes the port. Closing an already closed device is a no-op.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}

	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", d.port, err)
	}

	return nil
}

// IsOpen returns whether the port is currently open.
func (d *Serial) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn != nil
}

// Waiting polls the port without blocking and returns the number of buffered bytes.
func (d *Serial) Waiting() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return 0, ErrNotOpen
	}
	if len(d.pending) > 0 {
		return len(d.pending), nil
	}

	if err := d.read(0); err != nil {
		return 0, err
	}

	return len(d.pending), nil
}

// ReadLine reads until a newline or until the read timeout expires.
// A partial line is returned on timeout.
func (d *Serial) ReadLine() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil, ErrNotOpen
	}

	deadline := time.Now().Add(d.readTimeout)
	for {
		if i := bytes.IndexByte(d.pending, '\n'); i >= 0 {
			return d.take(i + 1), nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return d.take(len(d.pending)), nil
		}

		if err := d.read(remaining); err != nil {
			return nil, err
		}
	}
}

// read performs a single port read bounded by timeout. Must be called with mu held.
func (d *Serial) read(timeout time.Duration) error {
	if err := d.conn.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set read timeout on %s: %w", d.port, err)
	}

	n, err := d.conn.Read(d.buf)
	if n > 0 {
		d.pending = append(d.pending, d.buf[:n]...)
	}
	if err != nil {
		return fmt.Errorf("failed to read from %s: %w", d.port, err)
	}

	return nil
}

// take removes and returns the first n pending bytes. Must be called with mu held.
func (d *Serial) take(n int) []byte {
	line := make([]byte, n)
	copy(line, d.pending[:n])
	d.pending = append(d.pending[:0], d.pending[n:]...)
	return line
}

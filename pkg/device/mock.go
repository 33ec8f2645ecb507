package device

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/itohio/gridscope/pkg/config"
	"github.com/itohio/gridscope/pkg/telemetry"
)

// ErrMockDisconnected is reported once the simulated cable is pulled.
var ErrMockDisconnected = errors.New("mock device disconnected")

// Mock simulates a grid meter for testing and development.
// It produces one telemetry line every SampleRate.
type Mock struct {
	cfg *config.MockConfig
	now func() time.Time

	mu       sync.Mutex
	open     bool
	opened   time.Time
	lastLine time.Time
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			SampleRate: 500 * time.Millisecond,
		}
	}

	return &Mock{
		cfg: cfg,
		now: time.Now,
	}
}

// Name identifies the simulated device in logs.
func (m *Mock) Name() string {
	return "mock"
}

// Open simulates opening the device.
func (m *Mock) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.open {
		return fmt.Errorf("already open")
	}

	m.open = true
	m.opened = m.now()
	m.lastLine = m.opened

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.open = false
	return nil
}

// IsOpen returns whether the device is currently open.
func (m *Mock) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Waiting reports a pending line once SampleRate has elapsed since the previous one.
func (m *Mock) Waiting() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return 0, err
	}
	if m.now().Sub(m.lastLine) < m.cfg.SampleRate {
		return 0, nil
	}

	return 1, nil
}

// ReadLine returns a freshly generated telemetry line.
func (m *Mock) ReadLine() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return nil, err
	}

	now := m.now()
	m.lastLine = now

	return []byte(m.generateLine(now.Sub(m.opened)) + "\r\n"), nil
}

// check must be called with mu held.
func (m *Mock) check() error {
	if !m.open {
		return ErrNotOpen
	}
	if m.cfg.DisconnectAfter > 0 && m.now().Sub(m.opened) >= m.cfg.DisconnectAfter {
		return ErrMockDisconnected
	}
	return nil
}

// generateLine produces slowly varying mains readings.
func (m *Mock) generateLine(elapsed time.Duration) string {
	t := elapsed.Seconds()

	voltage := 230 + 4*math.Sin(t/7) + 0.5*math.Sin(t*1.3)
	current := 4 + 0.8*math.Sin(t/11) + 0.1*math.Cos(t*2.1)
	// Temperature creeps up towards a steady state
	temperature := 25 + 5*(1-math.Exp(-t/120)) + 0.2*math.Sin(t/5)

	return fmt.Sprintf("%s:%.1f,%s:%.2f,%s:%.1f",
		telemetry.Voltage, voltage,
		telemetry.Current, current,
		telemetry.Temperature, temperature,
	)
}

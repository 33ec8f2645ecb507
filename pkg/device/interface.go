package device

// Device defines the interface for telemetry sources (real or mocked).
type Device interface {
	Open() error
	Close() error
	IsOpen() bool
	Name() string
	// Waiting reports how many bytes can be read without blocking.
	Waiting() (int, error)
	// ReadLine returns the next line including its terminator, or whatever
	// arrived before the read timeout expired.
	ReadLine() ([]byte, error)
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)

// Package telemetry parses the delimited key-value lines sent by the meter.
//
// Wire format (newline terminated):
//
//	Voltage:225.4,Current:4.1,Temperature:28.9
package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Labels recognised by the dashboard. Other labels are parsed but ignored downstream.
const (
	Voltage     = "Voltage"
	Current     = "Current"
	Temperature = "Temperature"
)

const (
	fieldSeparator = ","
	valueSeparator = ":"
)

// ErrMalformedField is returned for a field that contains more than one value separator.
var ErrMalformedField = errors.New("malformed field")

// Reading maps a label to its value for a single line.
type Reading map[string]float64

// Get returns the value for label, or 0 if the line did not carry it.
func (r Reading) Get(label string) float64 {
	return r[label]
}

// ParseError reports a rejected line together with the offending input.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts one line into a Reading.
// Fields without a value separator are skipped. A malformed field or a
// non-numeric value rejects the whole line. An empty line yields an empty Reading.
func Parse(line string) (Reading, error) {
	reading := Reading{}
	if line == "" {
		return reading, nil
	}

	for _, field := range strings.Split(line, fieldSeparator) {
		if !strings.Contains(field, valueSeparator) {
			continue
		}

		parts := strings.Split(field, valueSeparator)
		if len(parts) != 2 {
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%w %q: expected label:value, got %d parts", ErrMalformedField, field, len(parts)),
			}
		}

		label := strings.TrimSpace(parts[0])
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("invalid value for %s: %w", label, err)}
		}

		// Repeated labels: last one wins
		reading[label] = value
	}

	return reading, nil
}

// Decode turns raw bytes from the wire into a trimmed line,
// silently dropping invalid UTF-8 sequences.
func Decode(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
}

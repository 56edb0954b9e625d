// Package device opens the meter's TIC serial output using go.bug.st/serial
// and exposes it as a plain byte stream for the decoder.
package device

import (
	"errors"
	"fmt"
	"sync"

	serial "go.bug.st/serial"
)

// SerialDevice wraps the TIC serial port as an io.Reader byte source.
// Historical mode runs at 1200 baud, 7 data bits, no parity, 1 stop bit.
// Close may be called from another goroutine while a Read is in flight; the
// read then finishes against the old port handle and returns its error.
type SerialDevice struct {
	mu   sync.Mutex
	port serial.Port
	dev  string
	baud int
}

// NewSerialDevice creates a device for the given path and baudrate without
// opening it; the caller owns the Open/retry cycle.
func NewSerialDevice(dev string, baud int) *SerialDevice {
	if baud <= 0 {
		baud = 1200
	}
	return &SerialDevice{dev: dev, baud: baud}
}

// Open opens the serial port with the historical-mode line settings.
// It is a no-op when the port is already open.
func (s *SerialDevice) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != nil {
		return nil
	}
	mode := &serial.Mode{
		BaudRate: s.baud,
		DataBits: 7,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(s.dev, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial %s: %w", s.dev, err)
	}
	s.port = p
	return nil
}

// Read implements io.Reader over the open port. Read errors surface to the
// decoder as source exhaustion.
func (s *SerialDevice) Read(p []byte) (int, error) {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port == nil {
		return 0, errors.New("serial port not open")
	}
	return port.Read(p)
}

// Close closes the underlying serial connection, unblocking any in-flight
// Read.
func (s *SerialDevice) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

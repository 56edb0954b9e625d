package device

import (
	"sync"
	"testing"
)

func TestReadBeforeOpen(t *testing.T) {
	d := NewSerialDevice("/dev/null", 1200)
	buf := make([]byte, 16)
	if _, err := d.Read(buf); err == nil {
		t.Fatal("Read on unopened device must fail")
	}
}

func TestCloseIdempotent(t *testing.T) {
	d := NewSerialDevice("/dev/null", 1200)
	if err := d.Close(); err != nil {
		t.Fatalf("Close on unopened device: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

// Concurrent Read and Close on a never-opened device must not race or
// panic: Read either sees the port or reports it closed.
func TestReadCloseConcurrent(t *testing.T) {
	d := NewSerialDevice("/dev/null", 1200)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			buf := make([]byte, 1)
			_, _ = d.Read(buf)
		}()
		go func() {
			defer wg.Done()
			_ = d.Close()
		}()
	}
	wg.Wait()
}

func TestDefaultBaud(t *testing.T) {
	d := NewSerialDevice("/dev/null", 0)
	if d.baud != 1200 {
		t.Fatalf("baud = %d, want historical-mode default 1200", d.baud)
	}
}

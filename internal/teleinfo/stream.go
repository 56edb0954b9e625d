// Package teleinfo decodes the historical-mode TIC byte stream of a utility
// meter into checksum-validated ten-field records.
//
// Wire format, one frame:
//
//	0x02 <dataset>+ 0x03
//	dataset: 0x0A <label> 0x09 <value> 0x09 <checksum> 0x0D
//	checksum: (sum(label + 0x09 + value) & 0x3F) + 0x20
//
// The Decoder pulls bytes from an io.Reader and emits records in arrival
// order. Corrupt datasets and frames never terminate the stream: they are
// dropped, reported through the Reporter, and decoding moves on. Only the
// exhaustion of the byte source ends the sequence.
package teleinfo

import (
	"io"

	"TeleinfoBridge/internal/model"
)

// Reporter receives the recoverable decode errors and warnings. It is
// called synchronously from Next; implementations should be cheap.
type Reporter func(err error)

// Decoder turns a continuous byte source into a sequence of validated
// records. It is single-threaded: Next must not be called concurrently.
type Decoder struct {
	frames *frameScanner
	report Reporter
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithReporter routes recoverable decode errors to fn instead of dropping
// them.
func WithReporter(fn Reporter) Option {
	return func(d *Decoder) {
		d.report = fn
	}
}

// NewDecoder creates a Decoder reading from src. The decoder makes no
// assumption about read granularity; src may deliver one byte at a time.
func NewDecoder(src io.Reader, opts ...Option) *Decoder {
	d := &Decoder{report: func(error) {}}
	for _, opt := range opts {
		opt(d)
	}
	d.frames = newFrameScanner(src, d.report)
	return d
}

// Next blocks until the next complete valid record has been decoded and
// returns it. Frames that fail validation are skipped. Once the source is
// exhausted Next returns its read error (io.EOF for a clean end); the
// decoder is not restartable after that.
func (d *Decoder) Next() (model.TeleinfoRecord, error) {
	for {
		frame, err := d.frames.next()
		if err != nil {
			return model.TeleinfoRecord{}, err
		}
		rec, err := assemble(frame, d.report)
		if err != nil {
			d.report(err)
			continue
		}
		return rec, nil
	}
}

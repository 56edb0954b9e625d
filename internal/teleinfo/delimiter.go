package teleinfo

import (
	"bufio"
	"io"
)

const (
	stx = 0x02 // frame start marker
	etx = 0x03 // frame end marker
	lf  = 0x0A // dataset start
	ht  = 0x09 // label/value/checksum separator
	cr  = 0x0D // dataset end

	// A historical-mode frame is around 200 bytes. Anything past this bound
	// is corruption, not a frame; the scanner gives up on it and
	// resynchronizes at the next start marker.
	maxFrameLen = 4096
)

// frameScanner extracts the byte spans between a start and an end marker
// from a continuous byte source. Bytes outside any frame are dropped
// silently; a start marker arriving inside an open frame discards the open
// frame and restarts from the new marker.
type frameScanner struct {
	r       *bufio.Reader
	report  Reporter
	buf     []byte
	inFrame bool
}

func newFrameScanner(src io.Reader, report Reporter) *frameScanner {
	return &frameScanner{r: bufio.NewReader(src), report: report}
}

// next returns the body of the next complete frame, markers excluded. Once
// the source is exhausted it returns the underlying read error (io.EOF for
// a clean end); an in-progress frame at that point is discarded.
func (s *frameScanner) next() ([]byte, error) {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if s.inFrame {
				s.report(&FramingError{Reason: "source ended mid-frame"})
				s.inFrame = false
				s.buf = s.buf[:0]
			}
			return nil, err
		}
		switch b {
		case stx:
			if s.inFrame {
				s.report(&FramingError{Reason: "start marker inside open frame"})
			}
			s.inFrame = true
			s.buf = s.buf[:0]
		case etx:
			if !s.inFrame {
				continue
			}
			frame := make([]byte, len(s.buf))
			copy(frame, s.buf)
			s.inFrame = false
			s.buf = s.buf[:0]
			return frame, nil
		default:
			if !s.inFrame {
				continue
			}
			if len(s.buf) >= maxFrameLen {
				s.report(&FramingError{Reason: "frame exceeds maximum length"})
				s.inFrame = false
				s.buf = s.buf[:0]
				continue
			}
			s.buf = append(s.buf, b)
		}
	}
}

package teleinfo

import (
	"fmt"
	"strings"
)

// The decoder recovers from every error below: the offending dataset or
// frame is dropped and scanning continues. They are delivered through the
// Reporter so the caller can log or count them.

// FramingError reports a frame that could not be delimited: a start marker
// arrived while a frame was still open, the frame outgrew the buffer bound,
// or the source ended mid-frame.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return "teleinfo: framing: " + e.Reason
}

// DatasetGrammarError reports a segment that does not match the
// <label> HT <value> HT <checksum> CR grammar.
type DatasetGrammarError struct {
	Segment string
}

func (e *DatasetGrammarError) Error() string {
	return fmt.Sprintf("teleinfo: malformed dataset %q", e.Segment)
}

// ChecksumMismatchError reports a dataset whose trailing checksum byte does
// not match the computed one. The dataset is dropped.
type ChecksumMismatchError struct {
	Label string
	Value string
	Got   byte
	Want  byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("teleinfo: checksum mismatch on %s: got %#02x, want %#02x", e.Label, e.Got, e.Want)
}

// DuplicateFieldWarning reports a label repeated within one frame. The first
// occurrence wins; the later value is dropped.
type DuplicateFieldWarning struct {
	Label string
}

func (e *DuplicateFieldWarning) Error() string {
	return "teleinfo: duplicate field " + e.Label
}

// UnknownFieldWarning reports a label outside the fixed historical-mode set.
type UnknownFieldWarning struct {
	Label string
}

func (e *UnknownFieldWarning) Error() string {
	return "teleinfo: unknown field " + e.Label
}

// IncompleteFrameError reports a frame that ended before all ten fields were
// observed. No record is emitted for such a frame.
type IncompleteFrameError struct {
	Missing []string
}

func (e *IncompleteFrameError) Error() string {
	return "teleinfo: incomplete frame, missing " + strings.Join(e.Missing, ", ")
}

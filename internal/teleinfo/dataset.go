package teleinfo

import "bytes"

// dataSet is one label/value/checksum triple extracted from a frame body.
type dataSet struct {
	label    string
	value    string
	checksum byte
}

// datasetScanner walks one frame body and yields its grammar-valid
// datasets in order. Malformed segments are reported and skipped. The
// scanner is bound to the frame it was created for and is not restartable.
type datasetScanner struct {
	rest   []byte
	report Reporter
}

func newDatasetScanner(frame []byte, report Reporter) *datasetScanner {
	return &datasetScanner{rest: frame, report: report}
}

// next returns the next well-formed dataset. ok is false once the frame
// body is exhausted.
func (s *datasetScanner) next() (ds dataSet, ok bool) {
	for {
		start := bytes.IndexByte(s.rest, lf)
		if start < 0 {
			return dataSet{}, false
		}
		s.rest = s.rest[start+1:]
		end := bytes.IndexByte(s.rest, cr)
		// A segment running into the next dataset start lost its CR: report
		// it and resume at that LF so the next dataset is not swallowed.
		if next := bytes.IndexByte(s.rest, lf); next >= 0 && (end < 0 || next < end) {
			s.report(&DatasetGrammarError{Segment: string(s.rest[:next])})
			s.rest = s.rest[next:]
			continue
		}
		if end < 0 {
			s.report(&DatasetGrammarError{Segment: string(s.rest)})
			s.rest = nil
			return dataSet{}, false
		}
		seg := s.rest[:end]
		s.rest = s.rest[end+1:]
		ds, err := parseDataSet(seg)
		if err != nil {
			s.report(err)
			continue
		}
		return ds, true
	}
}

// parseDataSet splits one LF..CR segment (both markers stripped) into its
// triple: <label> HT <value> HT <checksum>, where the checksum is exactly
// one byte and label/value are printable 7-bit ASCII.
func parseDataSet(seg []byte) (dataSet, error) {
	parts := bytes.Split(seg, []byte{ht})
	if len(parts) != 3 || len(parts[0]) == 0 || len(parts[2]) != 1 {
		return dataSet{}, &DatasetGrammarError{Segment: string(seg)}
	}
	if !printable(parts[0]) || !printable(parts[1]) {
		return dataSet{}, &DatasetGrammarError{Segment: string(seg)}
	}
	return dataSet{
		label:    string(parts[0]),
		value:    string(parts[1]),
		checksum: parts[2][0],
	}, nil
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

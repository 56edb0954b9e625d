package teleinfo

import "TeleinfoBridge/internal/model"

// knownLabels is the fixed historical-mode field set. A frame is complete
// only when every one of them has been observed.
var knownLabels = []string{
	"ADCO",     // meter address
	"OPTARIF",  // tariff option
	"ISOUSC",   // subscribed current
	"BASE",     // base index
	"PTEC",     // current tariff period
	"IINST",    // instantaneous current
	"IMAX",     // peak current
	"PAPP",     // apparent power
	"HHPHC",    // peak/off-peak schedule
	"MOTDETAT", // meter status word
}

// fieldFor maps a label to its destination in the record, nil for labels
// outside the known set.
func fieldFor(r *model.TeleinfoRecord, label string) *string {
	switch label {
	case "ADCO":
		return &r.Adco
	case "OPTARIF":
		return &r.Optarif
	case "ISOUSC":
		return &r.Isousc
	case "BASE":
		return &r.Base
	case "PTEC":
		return &r.Ptec
	case "IINST":
		return &r.Iinst
	case "IMAX":
		return &r.Imax
	case "PAPP":
		return &r.Papp
	case "HHPHC":
		return &r.Hhphc
	case "MOTDETAT":
		return &r.Motdetat
	}
	return nil
}

// assemble drives the dataset scanner over one frame body, validates each
// checksum and builds the record. Duplicate labels keep their first value,
// unknown labels are ignored; both are reported as warnings. When the frame
// ends with any of the ten fields unset, no record is produced and an
// IncompleteFrameError is returned.
func assemble(frame []byte, report Reporter) (model.TeleinfoRecord, error) {
	var rec model.TeleinfoRecord
	seen := make(map[string]bool, len(knownLabels))

	sc := newDatasetScanner(frame, report)
	for {
		ds, ok := sc.next()
		if !ok {
			break
		}
		if want := Checksum(ds.label, ds.value); ds.checksum != want {
			report(&ChecksumMismatchError{Label: ds.label, Value: ds.value, Got: ds.checksum, Want: want})
			continue
		}
		dst := fieldFor(&rec, ds.label)
		if dst == nil {
			report(&UnknownFieldWarning{Label: ds.label})
			continue
		}
		if seen[ds.label] {
			report(&DuplicateFieldWarning{Label: ds.label})
			continue
		}
		seen[ds.label] = true
		*dst = ds.value
	}

	if len(seen) != len(knownLabels) {
		missing := make([]string, 0, len(knownLabels)-len(seen))
		for _, label := range knownLabels {
			if !seen[label] {
				missing = append(missing, label)
			}
		}
		return model.TeleinfoRecord{}, &IncompleteFrameError{Missing: missing}
	}
	return rec, nil
}

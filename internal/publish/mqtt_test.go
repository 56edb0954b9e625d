package publish

import (
	"encoding/json"
	"testing"

	"TeleinfoBridge/internal/model"
)

func TestTopic(t *testing.T) {
	rec := model.TeleinfoRecord{Adco: "012345678912"}
	if got := Topic("teleinfo", rec); got != "teleinfo/012345678912" {
		t.Fatalf("Topic = %q", got)
	}
}

func TestPayloadFieldNames(t *testing.T) {
	rec := model.TeleinfoRecord{
		Adco:     "012345678912",
		Optarif:  "BASE",
		Isousc:   "30",
		Base:     "002809718",
		Ptec:     "TH..",
		Iinst:    "002",
		Imax:     "090",
		Papp:     "00390",
		Hhphc:    "A",
		Motdetat: "000000",
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(payload, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m) != 10 {
		t.Fatalf("payload has %d fields, want 10: %v", len(m), m)
	}
	for _, key := range []string{"adco", "optarif", "isousc", "base", "ptec", "iinst", "imax", "papp", "hhphc", "motdetat"} {
		if _, ok := m[key]; !ok {
			t.Errorf("payload missing %q", key)
		}
	}
	if m["adco"] != "012345678912" || m["papp"] != "00390" {
		t.Fatalf("payload values wrong: %v", m)
	}
}

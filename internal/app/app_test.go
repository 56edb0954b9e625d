package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"TeleinfoBridge/internal/model"
	"TeleinfoBridge/internal/store"
)

func newTestApp(t *testing.T, recs ...model.TeleinfoRecord) *App {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "teleinfo.db"), 100)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("store.Close: %v", err)
		}
	})
	for _, rec := range recs {
		if err := st.Put(rec); err != nil {
			t.Fatalf("store.Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	a, err := NewApp(st)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return a
}

func TestHandleLatest(t *testing.T) {
	a := newTestApp(t,
		model.TeleinfoRecord{Adco: "012345678912", Papp: "00390"},
		model.TeleinfoRecord{Adco: "012345678912", Papp: "00400"},
	)

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/latest", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var rec model.TeleinfoRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Papp != "00400" {
		t.Fatalf("papp = %q, want 00400", rec.Papp)
	}
}

func TestHandleLatestEmpty(t *testing.T) {
	a := newTestApp(t)

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/latest", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestHandleRecent(t *testing.T) {
	a := newTestApp(t,
		model.TeleinfoRecord{Adco: "012345678912", Papp: "00100"},
		model.TeleinfoRecord{Adco: "012345678912", Papp: "00200"},
		model.TeleinfoRecord{Adco: "012345678912", Papp: "00300"},
	)

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recent?n=2", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var recs []model.TeleinfoRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 2 || recs[0].Papp != "00300" || recs[1].Papp != "00200" {
		t.Fatalf("recent = %+v", recs)
	}
}

func TestHandleRecentHugeN(t *testing.T) {
	a := newTestApp(t, model.TeleinfoRecord{Adco: "012345678912", Papp: "00390"})

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recent?n=1152921504606846976", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var recs []model.TeleinfoRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("recent = %+v", recs)
	}
}

func TestHandleRecentBadQuery(t *testing.T) {
	a := newTestApp(t)

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recent?n=zero", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestHandleDashboard(t *testing.T) {
	a := newTestApp(t, model.TeleinfoRecord{Adco: "012345678912", Papp: "00390"})

	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "012345678912") || !strings.Contains(body, "00390") {
		t.Fatalf("dashboard missing record values")
	}
}

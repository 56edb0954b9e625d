package app

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// handleLatest serves the most recently decoded record as JSON.
func (a *App) handleLatest(w http.ResponseWriter, r *http.Request) {
	rec, found, err := a.Store.Latest()
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "no records yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Printf("[app] warning: failed to write latest record: %v", err)
	}
}

// handleRecent serves the n most recent records, newest first (?n=, default 20).
func (a *App) handleRecent(w http.ResponseWriter, r *http.Request) {
	n := 20
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}
	recs, err := a.Store.Recent(n)
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recs); err != nil {
		log.Printf("[app] warning: failed to write recent records: %v", err)
	}
}

// handleWS upgrades the connection and registers it for record broadcasts.
func (a *App) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[app] websocket upgrade failed: %v", err)
		return
	}
	a.mu.Lock()
	a.clients[conn] = true
	a.mu.Unlock()
	log.Printf("[app] websocket client connected (%s)", r.RemoteAddr)

	// drain the connection until the client goes away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		a.mu.Lock()
		delete(a.clients, conn)
		a.mu.Unlock()
		if err := conn.Close(); err != nil {
			log.Printf("[app] warning: websocket close: %v", err)
		}
		log.Printf("[app] websocket client disconnected (%s)", r.RemoteAddr)
	}()
}

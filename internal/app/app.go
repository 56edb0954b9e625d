// Package app implements the web server and API layer for the TeleinfoBridge
// dashboard: latest/recent record endpoints and a websocket live feed.
package app

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TeleinfoBridge/internal/model"
	"TeleinfoBridge/internal/store"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// App serves the dashboard and API backed by the record archive, and
// broadcasts each new record to connected websocket clients.
type App struct {
	Store  *store.Store
	Tmpl   *template.Template
	Mux    *http.ServeMux
	Server *http.Server

	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewApp initializes the web app with templates and routes.
func NewApp(st *store.Store) (*App, error) {
	tmpl, err := template.New("dashboard").Parse(dashboardHTML)
	if err != nil {
		return nil, fmt.Errorf("[app] failed to parse dashboard template: %w", err)
	}

	app := &App{
		Store:   st,
		Tmpl:    tmpl,
		Mux:     http.NewServeMux(),
		clients: map[*websocket.Conn]bool{},
	}
	app.registerRoutes()
	return app, nil
}

// Start launches the web server and blocks until stopped.
func (a *App) Start(addr string) error {
	if addr == "" {
		log.Println("[app] app server not started (empty address)")
		return nil
	}

	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	a.Server = &http.Server{
		Addr:    addr,
		Handler: a.Mux,
	}

	log.Printf("[app] Web server listening at http://%s", addr)

	// Run server until Shutdown() is called
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("[app] HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the web server and disconnects websocket clients.
func (a *App) Stop() {
	if a == nil {
		return
	}

	if a.Server != nil {
		log.Println("[app] Shutting down web server...")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(ctx); err != nil {
			log.Printf("[app] HTTP server shutdown error: %v", err)
		} else {
			log.Println("[app] Web server stopped cleanly")
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for conn := range a.clients {
		if err := conn.Close(); err != nil {
			log.Printf("[app] warning: failed to close websocket: %v", err)
		}
		delete(a.clients, conn)
	}
}

// Broadcast pushes one record to every connected websocket client,
// dropping clients whose connection failed.
func (a *App) Broadcast(rec model.TeleinfoRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for conn := range a.clients {
		if err := conn.WriteJSON(rec); err != nil {
			log.Printf("[app] dropping websocket client: %v", err)
			if cerr := conn.Close(); cerr != nil {
				log.Printf("[app] warning: websocket close: %v", cerr)
			}
			delete(a.clients, conn)
		}
	}
}

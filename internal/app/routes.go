package app

// registerRoutes sets up all HTTP handlers for the application.
func (a *App) registerRoutes() {
	a.Mux.HandleFunc("/", a.handleDashboard)

	// API routes
	a.Mux.HandleFunc("/api/latest", a.handleLatest)
	a.Mux.HandleFunc("/api/recent", a.handleRecent)

	// websocket live feed
	a.Mux.HandleFunc("/ws", a.handleWS)
}

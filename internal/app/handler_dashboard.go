package app

import (
	"log"
	"net/http"
)

// dashboardHTML is the single observation page: it renders the latest
// record server-side and keeps the table live over the websocket feed.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Teleinfo</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #999; padding: 0.3em 0.8em; }
th { text-align: left; background: #eee; }
</style>
</head>
<body>
<h1>Teleinfo {{if .Adco}}&mdash; meter {{.Adco}}{{end}}</h1>
<table>
<tr><th>Label</th><th>Value</th></tr>
<tr><td>ADCO</td><td id="adco">{{.Adco}}</td></tr>
<tr><td>OPTARIF</td><td id="optarif">{{.Optarif}}</td></tr>
<tr><td>ISOUSC</td><td id="isousc">{{.Isousc}}</td></tr>
<tr><td>BASE</td><td id="base">{{.Base}}</td></tr>
<tr><td>PTEC</td><td id="ptec">{{.Ptec}}</td></tr>
<tr><td>IINST</td><td id="iinst">{{.Iinst}}</td></tr>
<tr><td>IMAX</td><td id="imax">{{.Imax}}</td></tr>
<tr><td>PAPP</td><td id="papp">{{.Papp}}</td></tr>
<tr><td>HHPHC</td><td id="hhphc">{{.Hhphc}}</td></tr>
<tr><td>MOTDETAT</td><td id="motdetat">{{.Motdetat}}</td></tr>
</table>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const rec = JSON.parse(ev.data);
  for (const key of Object.keys(rec)) {
    const cell = document.getElementById(key);
    if (cell) cell.textContent = rec[key];
  }
};
</script>
</body>
</html>
`

// handleDashboard renders the live dashboard seeded with the latest record.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rec, _, err := a.Store.Latest()
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.Tmpl.Execute(w, rec); err != nil {
		log.Printf("[app] failed to render dashboard: %v", err)
	}
}

package cargoflights

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"cargo-board/internal/models"
)

const boardTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Cargo Flights - {{.Airport}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 900px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; text-align: center; }
        table { width: 100%; border-collapse: collapse; }
        th { text-align: left; background-color: #f8f9fa; padding: 8px; border-bottom: 2px solid #ddd; }
        td { padding: 8px; border-bottom: 1px solid #eee; }
        .error { color: #D32F2F; font-weight: bold; }
        .placeholder { color: #666; font-style: italic; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 30px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>✈️ Cargo Flights at {{.Airport}}</h1>
        {{if not .GeneratedAt.IsZero}}<p>Updated {{.GeneratedAt.Format "02 Jan 15:04:05"}}</p>{{end}}
    </div>

    <table>
        <tr>
            <th>Time</th><th>Airline</th><th>Flight</th><th>Direction</th><th>Airport</th><th>Status</th>
        </tr>
        {{if .Err}}
        <tr><td colspan="6" class="error">{{.Err}}</td></tr>
        {{else if not .Rows}}
        <tr><td colspan="6" class="placeholder">No cargo flights in the current time window</td></tr>
        {{else}}
        {{range .Rows}}
        <tr>
            <td>{{.LocalTime}}</td>
            <td>{{.Airline}}</td>
            <td>{{.FlightID}}</td>
            <td>{{.Direction}}</td>
            <td>{{.OtherAirport}}</td>
            <td>{{.Status}}</td>
        </tr>
        {{end}}
        {{end}}
    </table>

    <form method="POST" action="/refresh"><button type="submit">Refresh</button></form>

    <div class="footer">
        <p>Flight data from Avinor</p>
    </div>
</body>
</html>
`

// BoardServer owns the latest published board and serves it over HTTP. A
// POST to /refresh triggers a new pipeline run; completed runs publish with
// a generation number so a slow, stale run cannot overwrite a newer board.
type BoardServer struct {
	port    int
	tmpl    *template.Template
	refresh func()

	mu           sync.Mutex
	board        models.Board
	nextGen      uint64
	publishedGen uint64
}

func NewBoardServer(port int) *BoardServer {
	return &BoardServer{
		port: port,
		tmpl: template.Must(template.New("board").Parse(boardTemplate)),
	}
}

// SetRefreshFunc installs the callback invoked for manual refreshes.
func (s *BoardServer) SetRefreshFunc(fn func()) {
	s.refresh = fn
}

// BeginRun allocates the generation for a new invocation.
func (s *BoardServer) BeginRun() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGen++
	return s.nextGen
}

// Publish replaces the displayed board unless a newer generation already
// published. Reports whether the board was replaced.
func (s *BoardServer) Publish(gen uint64, board models.Board) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.publishedGen {
		return false
	}
	s.publishedGen = gen
	s.board = board
	return true
}

// Board returns the currently displayed board.
func (s *BoardServer) Board() models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *BoardServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/refresh", s.refreshHandler)

	log.Printf("Board server starting on port %d", s.port)
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux); err != nil {
			log.Printf("Board server error: %v", err)
		}
	}()
}

func (s *BoardServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.Board()); err != nil {
		http.Error(w, "failed to render board", http.StatusInternalServerError)
		log.Printf("Board render error: %v", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *BoardServer) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.refresh != nil {
		go s.refresh()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

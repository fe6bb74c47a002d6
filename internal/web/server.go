package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"github.com/coder/websocket"
)

//go:embed static
var staticFiles embed.FS

// TechniqueInfo is the JSON representation of a technique for the
// /api/techniques endpoint.
type TechniqueInfo struct {
	Name        string `json:"name"`
	Style       string `json:"style"`
	Description string `json:"description"`
	ResourceCap int    `json:"resourceCap,omitempty"`
}

// ProfileInfo is the JSON representation of an attribute profile for the
// /api/profiles endpoint.
type ProfileInfo struct {
	Name     string `json:"name"`
	Speed    int    `json:"speed"`
	Strength int    `json:"strength"`
	Defense  int    `json:"defense"`
}

// Server is the bushido web UI server.
type Server struct {
	loadoutsFile string
	mux          *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(loadoutsFile string) (*Server, error) {
	s := &Server{
		loadoutsFile: loadoutsFile,
		mux:          http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/techniques", s.handleTechniques)
	s.mux.HandleFunc("GET /api/profiles", s.handleProfiles)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleTechniques(w http.ResponseWriter, r *http.Request) {
	var techniques []TechniqueInfo
	for _, name := range duel.TechniqueNames() {
		t := duel.LookupTechnique(name)
		ti := TechniqueInfo{
			Name:        t.Name,
			Style:       t.Style,
			Description: t.Description,
		}
		if t.ResourceCap != 0 && t.ResourceCap != duel.DefaultResourceCap {
			ti.ResourceCap = t.ResourceCap
		}
		techniques = append(techniques, ti)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(techniques)
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.loadoutsFile)
	if err != nil {
		http.Error(w, "could not read loadouts file", http.StatusInternalServerError)
		return
	}

	lf, err := parseLoadoutYAML(data)
	if err != nil {
		http.Error(w, "could not parse loadouts file", http.StatusInternalServerError)
		return
	}

	var profiles []ProfileInfo
	for _, p := range lf.Profiles {
		profiles = append(profiles, ProfileInfo{
			Name:     p.Name,
			Speed:    p.Attributes.Speed,
			Strength: p.Attributes.Strength,
			Defense:  p.Attributes.Defense,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}

	var connectMsg struct {
		Type    string `json:"type"`
		Addr    string `json:"addr"`
		Profile string `json:"profile"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to duel server
	tcpConn, err := net.Dial("tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":   "error",
			"result": fmt.Sprintf("Could not connect to duel server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	// Send join message over TCP
	joinMsg, _ := json.Marshal(map[string]interface{}{
		"type":    "join",
		"profile": connectMsg.Profile,
	})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		log.Printf("TCP write join: %v", err)
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					log.Printf("TCP read error: %v", err)
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				log.Printf("TCP write error: %v", err)
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "duel ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

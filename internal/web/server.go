package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/mbraun/dropdash/internal/config"
	"github.com/mbraun/dropdash/internal/poller"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

type Server struct {
	host           string
	port           int
	refreshMinutes int

	poller    *poller.Poller
	hub       *Hub
	server    *http.Server
	templates map[string]*template.Template
}

func NewServer(settings config.ServerSettings, refreshMinutes int, p *poller.Poller) *Server {
	return &Server{
		host:           settings.Host,
		port:           settings.Port,
		refreshMinutes: refreshMinutes,
		poller:         p,
		hub:            NewHub(),
		templates:      loadTemplates(),
	}
}

func loadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)

	pages := []string{"dashboard.html"}
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			slog.Error("Failed to parse template", "page", page, "error", err)
			continue
		}
		templates[page] = tmpl
	}

	return templates
}

// Hub exposes the websocket hub so the poller callback can broadcast.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Start() {
	mux := http.NewServeMux()

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		slog.Error("Failed to create static filesystem", "error", err)
	} else {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/api/stats", s.handleAPIStats)
	mux.HandleFunc("/api/chart", s.handleAPIChart)
	mux.HandleFunc("/api/heatmap", s.handleAPIHeatMap)
	mux.HandleFunc("/api/status", s.handleAPIStatus)
	mux.HandleFunc("/ws", s.hub.HandleWS)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var handler http.Handler = mux
	if authEnabled() {
		handler = basicAuthMiddleware(mux)
		slog.Info("Web server authentication enabled")
	}

	s.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	slog.Info("Web server starting", "url", "http://"+addr+"/")

	go func() {
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Web server error", "error", err)
		}
	}()
}

func (s *Server) Stop() {
	s.hub.Close()
	if s.server != nil {
		_ = s.server.Close()
	}
}

func (s *Server) renderPage(w http.ResponseWriter, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, ok := s.templates[page]
	if !ok {
		slog.Error("Template not found", "page", page)
		writeInternalError(w, "Template not found")
		return
	}

	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("Failed to render page", "page", page, "error", err)
		writeInternalError(w, "Failed to render page")
	}
}

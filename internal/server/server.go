package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/jmorland/voiceloom/internal/database"
	"github.com/jmorland/voiceloom/internal/generate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the local preview server: browse generated documents, rate
// them, and submit edits.
type Server struct {
	db    *database.DB
	svc   *generate.Service
	pages map[string]*template.Template
	mux   *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB, svc *generate.Service) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefInt": func(n *int) int {
			if n == nil {
				return 0
			}
			return *n
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
	}

	// Parse base template first, then clone it per page so each page gets
	// its own {{define "content"}} and {{define "title"}}.
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"index.html", "document.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, svc: svc, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/doc/", s.handleDocument)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	records, err := s.db.GetRecentGenerations(50)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", map[string]any{
		"Records": records,
	})
}

// handleDocument serves /doc/{id} and the /doc/{id}/rate and
// /doc/{id}/edit form posts.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/doc/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if len(parts) == 2 && r.Method == http.MethodPost {
		s.handleAction(w, r, id, parts[1])
		return
	}

	rec, err := s.db.GetGenerationRecord(id)
	if err != nil || rec == nil {
		http.NotFound(w, r)
		return
	}

	state, _ := s.db.GetConfidenceState(rec.UserID)

	s.render(w, "document.html", map[string]any{
		"Record": rec,
		"State":  state,
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request, id, action string) {
	switch action {
	case "rate":
		rating, err := strconv.Atoi(r.FormValue("satisfaction"))
		if err == nil {
			if _, err := s.svc.Rate(id, rating, strings.TrimSpace(r.FormValue("feedback"))); err != nil {
				log.Printf("Error rating %s: %v", id, err)
			}
		}
	case "edit":
		edited := strings.TrimSpace(r.FormValue("edited_text"))
		if edited != "" {
			if _, err := s.svc.SubmitEdit(id, edited); err != nil {
				log.Printf("Error saving edit for %s: %v", id, err)
			}
		}
	}
	http.Redirect(w, r, "/doc/"+id, http.StatusFound)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, svc *generate.Service, port int) error {
	srv, err := New(db, svc)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

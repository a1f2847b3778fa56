package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dgallion1/readmepage/internal/metrics"
	"github.com/dgallion1/readmepage/internal/page"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageSource returns the page to serve for a request.
type PageSource interface {
	Get() (*page.Page, error)
}

// TerminalRenderer renders markdown for terminal clients.
type TerminalRenderer interface {
	Terminal(src string) (string, error)
}

// Server serves the rendered README page.
type Server struct {
	router   chi.Router
	pages    PageSource
	terminal TerminalRenderer
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	tmpl     *template.Template
	log      *slog.Logger
}

// NewServer creates and configures the HTTP server. m and gatherer may be nil,
// in which case request metrics and /metrics are disabled.
func NewServer(pages PageSource, terminal TerminalRenderer, m *metrics.Metrics, gatherer prometheus.Gatherer, log *slog.Logger) *Server {
	s := &Server{
		pages:    pages,
		terminal: terminal,
		metrics:  m,
		gatherer: gatherer,
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/", s.handlePage)
	r.Get("/logo", s.handleLogo)
	r.Get("/favicon.svg", s.handleFavicon)
	r.Get("/README.md", s.handleRawDocument)
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

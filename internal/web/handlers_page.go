package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/readmepage/internal/page"
	"github.com/dgallion1/readmepage/internal/render"
)

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">%s</text></svg>`

// pageView is the data handed to page.html.tmpl.
type pageView struct {
	Title       string
	Description string
	Layout      string
	Sidebar     string
	SidebarOpen bool
	LogoHeight  int
	LogoLink    string
	Outline     []*render.Section
	Body        template.HTML
}

func newPageView(p *page.Page) pageView {
	return pageView{
		Title:       p.Config.Title,
		Description: p.Document.Meta.Description,
		Layout:      string(p.Config.Layout),
		Sidebar:     string(p.Config.Sidebar),
		SidebarOpen: p.Config.Sidebar != page.SidebarCollapsed,
		LogoHeight:  p.Logo.Size.Height(),
		LogoLink:    p.Logo.Link,
		Outline:     p.Outline,
		Body:        p.Body,
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPage(w, r)
	if !ok {
		return
	}

	if wantsText(r) {
		out, err := s.terminal.Terminal(p.Document.Raw)
		if err != nil {
			s.log.Error("terminal render failed", "error", err)
			s.renderFailure(w)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(out))
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html.tmpl", newPageView(p)); err != nil {
		s.log.Error("execute page template", "error", err)
		s.renderFailure(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPage(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", p.Logo.ContentType)
	http.ServeContent(w, r, filepath.Base(p.Logo.Path), p.Logo.ModTime, bytes.NewReader(p.Logo.Data))
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPage(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprintf(w, faviconSVG, template.HTMLEscapeString(p.Config.Icon))
}

func (s *Server) handleRawDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := s.currentPage(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(p.Document.Raw))
}

// currentPage fetches the page, writing the failure page if the render pass
// fails.
func (s *Server) currentPage(w http.ResponseWriter, r *http.Request) (*page.Page, bool) {
	p, err := s.pages.Get()
	if err != nil {
		s.log.Error("page build failed", "path", r.URL.Path, "error", err)
		s.renderFailure(w)
		return nil, false
	}
	return p, true
}

func (s *Server) renderFailure(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "error.html.tmpl", nil); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(buf.Bytes())
}

// wantsText reports whether the client asked for terminal output, either
// explicitly with ?format=text, through the Accept header, or by being curl.
func wantsText(r *http.Request) bool {
	switch r.URL.Query().Get("format") {
	case "text":
		return true
	case "html":
		return false
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "text/html") {
		return false
	}
	if strings.HasPrefix(accept, "text/plain") {
		return true
	}
	return strings.HasPrefix(r.UserAgent(), "curl/")
}

package page

import (
	"html/template"
	"log/slog"
	"time"

	"github.com/dgallion1/readmepage/internal/config"
	"github.com/dgallion1/readmepage/internal/document"
	"github.com/dgallion1/readmepage/internal/metrics"
	"github.com/dgallion1/readmepage/internal/render"
)

// MarkdownRenderer turns document text into page body HTML.
type MarkdownRenderer interface {
	Render(src string) (render.Result, error)
}

// Spec is everything one render pass reads.
type Spec struct {
	Config       Config
	Logo         LogoSpec
	DocumentPath string
}

// SpecFromConfig maps environment configuration onto a page spec.
func SpecFromConfig(cfg config.Config) Spec {
	return Spec{
		Config: Config{
			Title:   cfg.Title,
			Icon:    cfg.Icon,
			Layout:  Layout(cfg.Layout),
			Sidebar: SidebarState(cfg.Sidebar),
		},
		Logo: LogoSpec{
			Path: cfg.LogoPath,
			Size: LogoSize(cfg.LogoSize),
			Link: cfg.LogoLink,
		},
		DocumentPath: cfg.DocumentPath,
	}
}

// Page is the output of one complete render pass.
type Page struct {
	Config   Config
	Logo     *Logo
	Document *document.Document
	Body     template.HTML
	Outline  []*render.Section
	BuiltAt  time.Time
}

// Builder runs the render pass: configure page, display logo, load document,
// render document. The first failing step aborts the pass.
type Builder struct {
	spec     Spec
	renderer MarkdownRenderer
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewBuilder creates a Builder. m may be nil.
func NewBuilder(spec Spec, renderer MarkdownRenderer, m *metrics.Metrics, log *slog.Logger) *Builder {
	return &Builder{
		spec:     spec,
		renderer: renderer,
		metrics:  m,
		log:      log,
	}
}

// Spec returns the spec the builder reads.
func (b *Builder) Spec() Spec {
	return b.spec
}

// Build runs one full render pass.
func (b *Builder) Build() (*Page, error) {
	start := time.Now()
	p, err := b.build()
	elapsed := time.Since(start)
	b.metrics.ObserveBuild(elapsed, err)
	if err == nil {
		b.log.Info("page built", "document", b.spec.DocumentPath, "sections", len(p.Outline), "duration_ms", elapsed.Milliseconds())
	}
	return p, err
}

func (b *Builder) build() (*Page, error) {
	cfg, err := InitializePage(b.spec.Config)
	if err != nil {
		return nil, err
	}
	b.log.Debug("page configured", "title", cfg.Title, "layout", cfg.Layout, "sidebar", cfg.Sidebar)

	logo, err := DisplayLogo(b.spec.Logo)
	if err != nil {
		return nil, err
	}
	b.log.Debug("logo loaded", "path", logo.Path, "content_type", logo.ContentType, "size", logo.Size)

	doc, err := document.Load(b.spec.DocumentPath)
	if err != nil {
		return nil, err
	}
	b.log.Debug("document loaded", "path", doc.Path, "bytes", len(doc.Raw))

	res, err := b.renderer.Render(doc.Raw)
	if err != nil {
		return nil, err
	}
	b.log.Debug("document rendered", "html_bytes", len(res.HTML), "sections", len(res.Outline))

	return &Page{
		Config:   cfg,
		Logo:     logo,
		Document: doc,
		Body:     res.HTML,
		Outline:  res.Outline,
		BuiltAt:  time.Now(),
	}, nil
}

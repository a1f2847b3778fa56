package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Options configures a Renderer.
type Options struct {
	Sanitize      bool // Run rendered HTML through a bluemonday UGC policy
	TerminalWidth int  // Word wrap for terminal output; 0 disables wrapping
}

// Result is the output of one markdown render.
type Result struct {
	HTML    template.HTML
	Outline []*Section
}

// Renderer converts README markdown into page body HTML using goldmark.
type Renderer struct {
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	termWidth int
}

func New(opts Options) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, emoji.Emoji),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		termWidth: opts.TerminalWidth,
	}
	if opts.Sanitize {
		p := bluemonday.UGCPolicy()
		// Heading IDs are the outline's link targets.
		p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		r.policy = p
	}
	return r
}

// Render converts src to HTML and collects its heading outline. Raw HTML
// embedded in src is omitted by goldmark.
func (r *Renderer) Render(src string) (Result, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return Result{}, fmt.Errorf("render markdown: %w", err)
	}

	out := buf.Bytes()
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}

	outline, err := Outline(bytes.NewReader(out))
	if err != nil {
		return Result{}, err
	}

	return Result{
		HTML:    template.HTML(out),
		Outline: outline,
	}, nil
}

// Terminal renders src as ANSI-styled text for terminal clients.
func (r *Renderer) Terminal(src string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(r.termWidth),
	)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return out, nil
}

package templating

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/CTAG07/textgen/pkg/markov"
)

// Renderer parses and executes output templates. Content functions are
// bound to the context of each Execute call. Like markov.Chain, a Renderer
// is not safe for concurrent use.
type Renderer struct {
	logger    *slog.Logger
	config    TemplateConfig
	chain     *markov.Chain
	templates *template.Template
}

// NewRenderer creates a Renderer that generates content with chain.
func NewRenderer(logger *slog.Logger, chain *markov.Chain, config TemplateConfig) *Renderer {
	r := &Renderer{
		logger: logger,
		config: config,
		chain:  chain,
	}
	r.templates = template.New("").Funcs(r.makeFuncMap(context.Background()))
	return r
}

func (r *Renderer) makeFuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		// Content Generation (from funcs_content.go)
		"markovText":       func(start string, maxWords int) (string, error) { return r.markovText(ctx, start, maxWords) },
		"markovFree":       func(maxWords int) (string, error) { return r.markovFree(ctx, maxWords) },
		"markovParagraphs": func(count, maxWords int) (string, error) { return r.markovParagraphs(ctx, count, maxWords) },

		// Simple (from funcs_simple.go)
		"upper":  upper,
		"lower":  lower,
		"title":  title,
		"trim":   trim,
		"wrap":   wrap,
		"add":    add,
		"sub":    sub,
		"inc":    inc,
		"repeat": repeat,
	}
}

// Parse adds a named template to the set.
func (r *Renderer) Parse(name, content string) error {
	if _, err := r.templates.New(name).Parse(content); err != nil {
		return fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	r.logger.Debug("Parsed template", "name", name)
	return nil
}

// ParseFile adds the template stored at path, named after its base name.
func (r *Renderer) ParseFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file: %w", err)
	}
	name := filepath.Base(path)
	return name, r.Parse(name, string(content))
}

// Execute renders the named template to w. The data argument is passed to
// the template unchanged.
func (r *Renderer) Execute(ctx context.Context, w io.Writer, name string, data any) error {
	// Clone so the content functions see ctx without touching the parsed set.
	set, err := r.templates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone templates: %w", err)
	}
	set.Funcs(r.makeFuncMap(ctx))
	return set.ExecuteTemplate(w, name, data)
}

// ExecuteString parses and executes a raw template string without adding it
// to the set.
func (r *Renderer) ExecuteString(ctx context.Context, w io.Writer, content string, data any) error {
	set, err := r.templates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone templates: %w", err)
	}
	t, err := set.Funcs(r.makeFuncMap(ctx)).New("inline").Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}
	return t.Execute(w, data)
}

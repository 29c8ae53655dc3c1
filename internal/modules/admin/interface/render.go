package transport

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "base"

// Renderer renders pages inside the base layout. A name of the form
// "page/fragment" renders only the named template of that page, which is how
// list containers are served.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	page, fragment, isFragment := strings.Cut(name, "/")
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("template %s not found", page)
	}
	if isFragment {
		return tmpl.ExecuteTemplate(w, fragment, data)
	}
	return tmpl.ExecuteTemplate(w, layoutTemplate, data)
}

var templateFuncs = template.FuncMap{
	"selected": func(current, value string) bool { return strings.TrimSpace(current) == strings.TrimSpace(value) },
}

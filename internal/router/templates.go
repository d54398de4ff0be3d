package router

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"expensetrack/internal/util"
)

//go:embed templates
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"formatHKD": util.FormatHKD,
	"formatAmount": func(cents int64) string {
		return util.FormatMoney(cents, "", ".")
	},
	"formatDate": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

type templates struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"login.html",
	"register.html",
	"index.html",
	"history.html",
	"amend.html",
}

func (router *router) parseTemplates() error {
	dir, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, parseErr := template.New("layout.html").Funcs(templateFuncs).ParseFS(dir, "layout.html", "pages/"+name)
		if parseErr != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, parseErr)
		}
		pages[name] = tmpl
	}

	router.templates = templates{pages: pages}

	return nil
}

func (t templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %s", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// Package web renders the portal's pages from embedded templates. It owns
// presentation only; handlers decide what data reaches a page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paklite/bankportal/internal/session"
)

//go:embed templates static
var content embed.FS

// Page is the envelope every template receives. Data carries the
// page-specific view model.
type Page struct {
	Title         string
	Authenticated bool
	UserName      string
	Flash         *session.Flash
	Data          any
}

var pageFiles = []string{
	"home",
	"register",
	"login",
	"overview",
	"create_account",
	"account_list",
	"transactions",
}

var funcs = template.FuncMap{
	"money":     formatMoney,
	"dateShort": func(t time.Time) string { return t.Format("02 Jan 2006, 03:04 PM") },
	"dateLong":  func(t time.Time) string { return t.Format("Monday, January 2, 2006 3:04 PM") },
	"title":     capitalize,
	"add":       func(a, b int) int { return a + b },
	"sub":       func(a, b int) int { return a - b },
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := template.New("layout.gohtml").Funcs(funcs).ParseFS(content,
			"templates/layout.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (rd *Renderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.gohtml", data)
}

// StaticFS exposes the embedded assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// formatMoney renders an amount as "Rs. 12,345" with the fractional part
// kept only when present.
func formatMoney(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return "Rs. " + out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/pitlane/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutTemplate = "layout.html"

// Each page is parsed together with the layout so that the "title" and
// "content" blocks do not collide between pages.
var pages = map[string]*template.Template{
	"login":     mustParsePage("login.html"),
	"register":  mustParsePage("register.html"),
	"perfil":    mustParsePage("perfil.html"),
	"historico": mustParsePage("historico.html"),
}

func mustParsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/"+layoutTemplate, "templates/"+name))
}

type loginView struct {
	Email string
	Error string
}

type registerView struct {
	Name   string
	Email  string
	Errors map[string]string
}

type profileView struct {
	User *models.User
}

type historyView struct {
	Sessions []models.GameSession
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := pages[page]
	if !ok {
		s.log(r.Context()).Error(r.Context(), "unknown page", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		s.log(r.Context()).Error(r.Context(), "template error", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

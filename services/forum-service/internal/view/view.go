// Package view renders the forum pages. Each page is an html/template file
// wrapped in the shared layout and exposed as a templ.Component.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageIndex     = "index"
	PageRegister  = "register"
	PageLogOut    = "log-out"
	PageDashboard = "dashboard"
	PageCreate    = "create"
	PageRecipe    = "recipe"
	PageError     = "error"
)

var pages = mustParsePages(PageIndex, PageRegister, PageLogOut, PageDashboard, PageCreate, PageRecipe, PageError)

func mustParsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(
			template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"),
		)
	}
	return parsed
}

// Base is embedded by every page's data.
type Base struct {
	Title string
	// User is the logged-in user name, empty for visitors.
	User string
}

type LoginData struct {
	Base
	Error1 string
	Error2 string
}

// RegisterForm echoes the submitted registration fields. Passwords are never echoed.
type RegisterForm struct {
	Name     string
	UserName string
	Email    string
}

type RegisterData struct {
	Base
	Error1 string
	Error2 string
	Error3 string
	Error4 string
	Error5 string
	Form   RegisterForm
}

type LogOutData struct {
	Base
}

type DashboardData struct {
	Base
	Recipes  []*model.Recipe
	Channel  string
	Channels []string
}

type CreateData struct {
	Base
	Channel  string
	Channels []string
}

type RecipeData struct {
	Base
	// Recipe is nil on the bare /recipe view and for unknown ids.
	Recipe *model.Recipe
}

type ErrorData struct {
	Base
	Heading string
	Message string
}

// Page returns the component rendering the named page with data.
func Page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return tmpl.ExecuteTemplate(w, "layout", data)
	})
}

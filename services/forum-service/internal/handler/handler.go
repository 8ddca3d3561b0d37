package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/view"
	"github.com/vasapolrittideah/recipe-forum/shared/session"
)

// ForumHTTPHandler serves the forum's server-rendered pages.
type ForumHTTPHandler struct {
	authUsecase   usecase.AuthUsecase
	recipeUsecase usecase.RecipeUsecase
	sessions      *session.Manager
	formDecoder   *form.Decoder
	logger        *zerolog.Logger
}

func NewForumHTTPHandler(
	authUsecase usecase.AuthUsecase,
	recipeUsecase usecase.RecipeUsecase,
	sessions *session.Manager,
	logger *zerolog.Logger,
) *ForumHTTPHandler {
	return &ForumHTTPHandler{
		authUsecase:   authUsecase,
		recipeUsecase: recipeUsecase,
		sessions:      sessions,
		formDecoder:   form.NewDecoder(),
		logger:        logger,
	}
}

// RegisterRoutes mounts the forum routes on r.
func (h *ForumHTTPHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.loadSession)

		r.Get("/", h.handle(h.LoginPage))
		r.Get("/register", h.handle(h.RegisterPage))
		r.Get("/logOut", h.handle(h.LogOut))
		r.Get("/dashboard", h.handle(h.Dashboard))
		r.Get("/create", h.handle(h.CreateRecipePage))
		r.Get("/recipe", h.handle(h.EmptyRecipe))
		r.Get("/recipe/{id}", h.handle(h.RecipeDetail))

		r.Post("/create", h.handle(h.CreateRecipe))
		r.Post("/newUser", h.handle(h.Register))
		r.Post("/login", h.handle(h.Login))
		r.Post("/comment/{id}", h.handle(h.Comment))
	})
}

// appHandler is a handler whose failures go to handleError. A handler
// either writes a response or returns an error, never both.
type appHandler func(w http.ResponseWriter, r *http.Request) error

func (h *ForumHTTPHandler) handle(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.handleError(w, r, err)
		}
	}
}

func (h *ForumHTTPHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	templ.Handler(
		view.Page(page, data),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				h.logger.Error().Err(err).Str("page", page).Msg("failed to render page")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

func (h *ForumHTTPHandler) base(r *http.Request, title string) view.Base {
	return view.Base{Title: title, User: currentUser(r.Context())}
}

// decodeForm parses the urlencoded body into dst. Query parameters are not included.
func (h *ForumHTTPHandler) decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return h.formDecoder.Decode(dst, r.PostForm)
}

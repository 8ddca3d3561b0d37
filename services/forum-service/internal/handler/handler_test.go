package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/shared/auth"
	"github.com/vasapolrittideah/recipe-forum/shared/session"
	"github.com/vasapolrittideah/recipe-forum/shared/validation"
)

const testPassword = "tomato123"

type testServer struct {
	router  http.Handler
	users   *fakeUserRepo
	recipes *fakeRecipeRepo
	store   *session.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)

	users := &fakeUserRepo{}
	recipes := &fakeRecipeRepo{}
	store := session.NewMemoryStore()
	sessions := session.NewManager(
		store,
		auth.NewJWTAuthenticator("recipe-forum-web", "recipe-forum", "test-secret"),
		session.Options{TTL: time.Hour},
	)
	logger := zerolog.Nop()

	h := NewForumHTTPHandler(
		usecase.NewAuthUsecase(users, v),
		usecase.NewRecipeUsecase(recipes, v),
		sessions,
		&logger,
	)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	return &testServer{router: r, users: users, recipes: recipes, store: store}
}

func (s *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register signs julia up and returns her session cookie.
func (s *testServer) register(t *testing.T) *http.Cookie {
	t.Helper()

	rec := s.post("/newUser", registerForm(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func registerForm() url.Values {
	return url.Values{
		"name":             {"Julia Child"},
		"userName":         {"julia"},
		"email":            {"julia@example.com"},
		"password":         {testPassword},
		"confirm_password": {testPassword},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}

	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}

func hasSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return true
		}
	}
	return false
}

func TestPages(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "<title>Log In | Recipe Forum</title>"},
		{path: "/register", want: "<title>Register | Recipe Forum</title>"},
		{path: "/recipe", want: "Recipe not found."},
		{path: "/create?channel=Heirloom%20Recipes", want: "Post a recipe to Heirloom Recipes"},
		{path: "/create", want: "Post a recipe to main"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := s.get(tt.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	s.recipes.seed("Pho", model.SectionCulturalWonders)
	s.recipes.seed("Toast", model.SectionMain)

	rec := s.post("/newUser", registerForm(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hasSessionCookie(rec))
	assert.Equal(t, 1, s.store.Len())

	require.Equal(t, 1, s.users.count())
	assert.Equal(t, "julia", s.users.users[0].UserName)
	assert.NotEqual(t, testPassword, s.users.users[0].Password)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Dashboard | Recipe Forum</title>")
	assert.Contains(t, body, "Logged in as julia")
	assert.Contains(t, body, "<h1>main</h1>")
	assert.Contains(t, body, "Pho")
	assert.Contains(t, body, "Toast")
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(url.Values)
		wants []string
	}{
		{
			name:  "user name taken",
			edit:  func(f url.Values) { f.Set("email", "other@example.com") },
			wants: []string{usecase.MsgUserExists},
		},
		{
			name:  "email taken",
			edit:  func(f url.Values) { f.Set("userName", "other") },
			wants: []string{usecase.MsgEmailExists},
		},
		{
			name: "weak password",
			edit: func(f url.Values) {
				f.Set("userName", "other")
				f.Set("email", "other@example.com")
				f.Set("password", "short")
				f.Set("confirm_password", "shorter")
			},
			wants: []string{usecase.MsgPasswordMismatch, usecase.MsgPasswordTooShort, usecase.MsgPasswordNoNumber},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.register(t)

			form := registerForm()
			tt.edit(form)
			rec := s.post("/newUser", form, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, hasSessionCookie(rec))
			assert.Equal(t, 1, s.users.count())

			body := rec.Body.String()
			assert.Contains(t, body, "<title>Register | Recipe Forum</title>")
			assert.Contains(t, body, `value="`+form.Get("email")+`"`)
			assert.NotContains(t, body, form.Get("password"))
			for _, want := range tt.wants {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestRegister_MissingName(t *testing.T) {
	s := newTestServer(t)

	form := registerForm()
	form.Set("name", "  ")
	rec := s.post("/newUser", form, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Validation failed</h1>")
	assert.Zero(t, s.users.count())
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register(t)

	rec := s.post("/login", url.Values{"email": {"julia@example.com"}, "password": {testPassword}}, nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	dashboard := s.get("/dashboard", sessionCookie(t, rec))
	assert.Equal(t, http.StatusOK, dashboard.Code)
	assert.Contains(t, dashboard.Body.String(), "Logged in as julia")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{name: "unknown email", email: "nobody@example.com", password: testPassword, want: msgInvalidUserName},
		{name: "wrong password", email: "julia@example.com", password: "wrong1234", want: msgInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.register(t)

			rec := s.post("/login", url.Values{"email": {tt.email}, "password": {tt.password}}, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, hasSessionCookie(rec))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestLogOut(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register(t)

	rec := s.get("/logOut", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You have been logged out")
	assert.NotContains(t, rec.Body.String(), "Logged in as")
	assert.Zero(t, s.store.Len())

	dashboard := s.get("/dashboard", cookie)
	assert.Equal(t, http.StatusOK, dashboard.Code)
	assert.NotContains(t, dashboard.Body.String(), "Logged in as")

	again := s.get("/logOut", nil)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	s.recipes.seed("Toast", model.SectionMain)
	s.recipes.seed("Pierogi", model.SectionHeirloomRecipes)

	filtered := s.get("/dashboard?channel=main", nil)
	assert.Equal(t, http.StatusOK, filtered.Code)
	assert.Contains(t, filtered.Body.String(), "Toast")
	assert.NotContains(t, filtered.Body.String(), "Pierogi")

	heirloom := s.get("/dashboard?channel="+url.QueryEscape(model.SectionHeirloomRecipes), nil)
	assert.Contains(t, heirloom.Body.String(), "<h1>Heirloom Recipes</h1>")
	assert.Contains(t, heirloom.Body.String(), "Pierogi")
	assert.NotContains(t, heirloom.Body.String(), "Toast")

	// No channel lists every recipe under the main label.
	all := s.get("/dashboard", nil)
	assert.Contains(t, all.Body.String(), "<h1>main</h1>")
	assert.Contains(t, all.Body.String(), "Toast")
	assert.Contains(t, all.Body.String(), "Pierogi")
}

func TestDashboard_QueryFailure(t *testing.T) {
	s := newTestServer(t)
	s.recipes.listErr = errBoom

	rec := s.get("/dashboard", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Server Error</h1>")
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestCreateRecipe(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register(t)

	rec := s.post("/create?channel="+url.QueryEscape(model.SectionHeirloomRecipes), url.Values{
		"recipeName":  {"Pierogi"},
		"ingredients": {"flour, potato , ,onion"},
		"recipeSteps": {"make dough\r\nfill\n\nboil"},
		"imageUrl":    {"https://example.com/p.jpg"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?channel=Heirloom+Recipes", rec.Header().Get("Location"))

	require.Len(t, s.recipes.recipes, 1)
	recipe := s.recipes.recipes[0]
	assert.Equal(t, "julia", recipe.Author)
	assert.Equal(t, model.SectionHeirloomRecipes, recipe.ForumSection)
	assert.Equal(t, []string{"flour", "potato", "onion"}, recipe.Ingredients)
	assert.Equal(t, []string{"make dough", "fill", "boil"}, recipe.RecipeSteps)
	assert.Equal(t, model.DefaultDuration, recipe.Duration)
	assert.Equal(t, "https://example.com/p.jpg", recipe.ImageURL)
}

func TestCreateRecipe_DefaultsToMain(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register(t)

	rec := s.post("/create", url.Values{
		"recipeName":  {"Toast"},
		"ingredients": {"bread"},
		"recipeSteps": {"toast"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?channel=main", rec.Header().Get("Location"))
	require.Len(t, s.recipes.recipes, 1)
	assert.Equal(t, model.SectionMain, s.recipes.recipes[0].ForumSection)
}

func TestCreateRecipe_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.post("/create?channel=main", url.Values{
		"recipeName":  {"Toast"},
		"ingredients": {"bread"},
		"recipeSteps": {"toast"},
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLoginRequired)
	assert.Empty(t, s.recipes.recipes)
}

func TestCreateRecipe_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		form    url.Values
	}{
		{
			name:    "missing ingredients",
			channel: model.SectionMain,
			form:    url.Values{"recipeName": {"Toast"}, "recipeSteps": {"toast"}},
		},
		{
			name:    "missing steps",
			channel: model.SectionMain,
			form:    url.Values{"recipeName": {"Toast"}, "ingredients": {"bread"}},
		},
		{
			name:    "unknown channel",
			channel: "Desserts",
			form:    url.Values{"recipeName": {"Toast"}, "ingredients": {"bread"}, "recipeSteps": {"toast"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			cookie := s.register(t)

			rec := s.post("/create?channel="+url.QueryEscape(tt.channel), tt.form, cookie)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "<h1>Validation failed</h1>")
			assert.Empty(t, s.recipes.recipes)
		})
	}
}

func TestRecipeDetail(t *testing.T) {
	s := newTestServer(t)
	recipe := s.recipes.seed("Pierogi", model.SectionHeirloomRecipes)

	found := s.get("/recipe/"+recipe.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, found.Code)
	assert.Contains(t, found.Body.String(), "<h1>Pierogi</h1>")

	for _, id := range []string{"000000000000000000000000", "not-an-id"} {
		rec := s.get("/recipe/"+id, nil)
		assert.Equal(t, http.StatusOK, rec.Code, id)
		assert.Contains(t, rec.Body.String(), "Recipe not found.", id)
	}
}

func TestComment(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register(t)
	recipe := s.recipes.seed("Pierogi", model.SectionHeirloomRecipes)

	rec := s.post("/comment/"+recipe.ID.Hex(), url.Values{"comments": {"  lovely  "}}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/recipe/"+recipe.ID.Hex(), rec.Header().Get("Location"))
	require.Len(t, recipe.Comments, 1)
	assert.Equal(t, "lovely", recipe.Comments[0].Text)
	assert.Equal(t, "julia", recipe.Comments[0].Author)
	assert.Equal(t, 1, recipe.Replies)
}

func TestComment_Failures(t *testing.T) {
	s := newTestServer(t)
	cookie := s.register(t)
	recipe := s.recipes.seed("Pierogi", model.SectionHeirloomRecipes)

	unauthenticated := s.post("/comment/"+recipe.ID.Hex(), url.Values{"comments": {"hi"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, unauthenticated.Code)

	empty := s.post("/comment/"+recipe.ID.Hex(), url.Values{"comments": {"  "}}, cookie)
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	malformed := s.post("/comment/not-an-id", url.Values{"comments": {"hi"}}, cookie)
	assert.Equal(t, http.StatusInternalServerError, malformed.Code)
	assert.Contains(t, malformed.Body.String(), "<h1>Server Error</h1>")

	missing := s.post("/comment/000000000000000000000000", url.Values{"comments": {"hi"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, missing.Code)

	assert.Empty(t, recipe.Comments)
}

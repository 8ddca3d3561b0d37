package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/payload"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/view"
)

const (
	msgInvalidUserName    = "Invalid username"
	msgInvalidCredentials = "Invalid email or password"
)

func (h *ForumHTTPHandler) LoginPage(w http.ResponseWriter, r *http.Request) error {
	h.render(w, r, http.StatusOK, view.PageIndex, view.LoginData{Base: h.base(r, "Log In")})
	return nil
}

func (h *ForumHTTPHandler) RegisterPage(w http.ResponseWriter, r *http.Request) error {
	h.render(w, r, http.StatusOK, view.PageRegister, view.RegisterData{Base: h.base(r, "Register")})
	return nil
}

func (h *ForumHTTPHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req payload.RegisterRequest
	if err := h.decodeForm(r, &req); err != nil {
		return err
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:            req.Name,
		UserName:        req.UserName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var regErr *usecase.RegistrationError
		if errors.As(err, &regErr) {
			h.render(w, r, http.StatusOK, view.PageRegister, view.RegisterData{
				Base:   h.base(r, "Register"),
				Error1: regErr.UserName,
				Error2: regErr.Email,
				Error3: regErr.PasswordMismatch,
				Error4: regErr.PasswordLength,
				Error5: regErr.PasswordNumber,
				Form: view.RegisterForm{
					Name:     req.Name,
					UserName: req.UserName,
					Email:    req.Email,
				},
			})
			return nil
		}

		return err
	}

	if err := h.sessions.Create(r.Context(), w, user.UserName); err != nil {
		return err
	}

	recipes, err := h.recipeUsecase.ListRecipes(r.Context(), "")
	if err != nil {
		return err
	}

	h.render(w, r, http.StatusOK, view.PageDashboard, view.DashboardData{
		Base:     view.Base{Title: "Dashboard", User: user.UserName},
		Recipes:  recipes,
		Channel:  model.DefaultForumSection,
		Channels: model.ForumSections,
	})
	return nil
}

func (h *ForumHTTPHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req payload.LoginRequest
	if err := h.decodeForm(r, &req); err != nil {
		return err
	}

	user, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			h.render(w, r, http.StatusOK, view.PageIndex, view.LoginData{
				Base:   h.base(r, "Log In"),
				Error1: msgInvalidUserName,
			})
			return nil
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.render(w, r, http.StatusOK, view.PageIndex, view.LoginData{
				Base:   h.base(r, "Log In"),
				Error2: msgInvalidCredentials,
			})
			return nil
		default:
			return err
		}
	}

	if err := h.sessions.Create(r.Context(), w, user.UserName); err != nil {
		return err
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	return nil
}

// LogOut is idempotent. The confirmation page is rendered as a visitor.
func (h *ForumHTTPHandler) LogOut(w http.ResponseWriter, r *http.Request) error {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		return err
	}

	h.render(w, r, http.StatusOK, view.PageLogOut, view.LogOutData{Base: view.Base{Title: "Log Out"}})
	return nil
}

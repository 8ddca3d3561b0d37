package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/payload"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/view"
)

// Dashboard lists the recipes of the requested channel. Without a channel
// every recipe is listed under the "main" label.
func (h *ForumHTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) error {
	channel := r.URL.Query().Get("channel")

	recipes, err := h.recipeUsecase.ListRecipes(r.Context(), channel)
	if err != nil {
		return err
	}

	if channel == "" {
		channel = model.DefaultForumSection
	}

	h.render(w, r, http.StatusOK, view.PageDashboard, view.DashboardData{
		Base:     h.base(r, "Dashboard"),
		Recipes:  recipes,
		Channel:  channel,
		Channels: model.ForumSections,
	})
	return nil
}

func (h *ForumHTTPHandler) CreateRecipePage(w http.ResponseWriter, r *http.Request) error {
	h.render(w, r, http.StatusOK, view.PageCreate, view.CreateData{
		Base:     h.base(r, "Create"),
		Channel:  channelParam(r),
		Channels: model.ForumSections,
	})
	return nil
}

func (h *ForumHTTPHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) error {
	var req payload.CreateRecipeRequest
	if err := h.decodeForm(r, &req); err != nil {
		return err
	}

	channel := channelParam(r)

	if _, err := h.recipeUsecase.CreateRecipe(r.Context(), usecase.CreateRecipeParams{
		Author:      currentUser(r.Context()),
		Channel:     channel,
		RecipeName:  req.RecipeName,
		Ingredients: req.Ingredients,
		RecipeSteps: req.RecipeSteps,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
	}); err != nil {
		return err
	}

	http.Redirect(w, r, "/dashboard?channel="+url.QueryEscape(channel), http.StatusSeeOther)
	return nil
}

func (h *ForumHTTPHandler) EmptyRecipe(w http.ResponseWriter, r *http.Request) error {
	h.render(w, r, http.StatusOK, view.PageRecipe, view.RecipeData{Base: h.base(r, "Recipe")})
	return nil
}

// RecipeDetail renders an empty detail page for unknown ids rather than a 404.
func (h *ForumHTTPHandler) RecipeDetail(w http.ResponseWriter, r *http.Request) error {
	recipe, err := h.recipeUsecase.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, usecase.ErrRecipeNotFound) {
		return err
	}

	h.render(w, r, http.StatusOK, view.PageRecipe, view.RecipeData{
		Base:   h.base(r, "Recipe"),
		Recipe: recipe,
	})
	return nil
}

func (h *ForumHTTPHandler) Comment(w http.ResponseWriter, r *http.Request) error {
	var req payload.CommentRequest
	if err := h.decodeForm(r, &req); err != nil {
		return err
	}

	id := chi.URLParam(r, "id")

	if err := h.recipeUsecase.AddComment(r.Context(), usecase.AddCommentParams{
		RecipeID: id,
		Author:   currentUser(r.Context()),
		Text:     req.Comments,
	}); err != nil {
		return err
	}

	http.Redirect(w, r, "/recipe/"+url.PathEscape(id), http.StatusSeeOther)
	return nil
}

func channelParam(r *http.Request) string {
	if channel := r.URL.Query().Get("channel"); channel != "" {
		return channel
	}
	return model.DefaultForumSection
}

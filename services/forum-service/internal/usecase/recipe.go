package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/repository"
	"github.com/vasapolrittideah/recipe-forum/shared/validation"
)

// RecipeUsecase defines the business logic for recipes and their comments.
type RecipeUsecase interface {
	// ListRecipes returns the recipes of channel, or every recipe when channel is empty.
	ListRecipes(ctx context.Context, channel string) ([]*model.Recipe, error)

	// GetRecipe returns ErrRecipeNotFound for unknown and malformed ids.
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)

	CreateRecipe(ctx context.Context, params CreateRecipeParams) (*model.Recipe, error)
	AddComment(ctx context.Context, params AddCommentParams) error
}

// CreateRecipeParams carries the raw form input of a new recipe.
// Ingredients are comma separated, steps newline separated.
type CreateRecipeParams struct {
	Author      string
	Channel     string
	RecipeName  string
	Ingredients string
	RecipeSteps string
	Duration    string
	ImageURL    string
}

// AddCommentParams defines the parameters for commenting on a recipe.
type AddCommentParams struct {
	RecipeID string
	Author   string
	Text     string
}

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrRecipeNotFound  = errors.New("recipe not found")
)

type recipeUsecase struct {
	recipeRepo repository.RecipeRepository
	validator  *validation.Validator
	now        func() time.Time
}

func NewRecipeUsecase(recipeRepo repository.RecipeRepository, validator *validation.Validator) RecipeUsecase {
	return &recipeUsecase{
		recipeRepo: recipeRepo,
		validator:  validator,
		now:        time.Now,
	}
}

func (u *recipeUsecase) ListRecipes(ctx context.Context, channel string) ([]*model.Recipe, error) {
	params := repository.FilterRecipesParams{}
	if channel != "" {
		params.ForumSection = &channel
	}

	return u.recipeRepo.ListRecipes(ctx, params)
}

func (u *recipeUsecase) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := u.recipeRepo.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrRecipeNotFound
		}

		return nil, err
	}

	return recipe, nil
}

func (u *recipeUsecase) CreateRecipe(ctx context.Context, params CreateRecipeParams) (*model.Recipe, error) {
	if params.Author == "" {
		return nil, ErrUnauthenticated
	}

	recipe := &model.Recipe{
		Author:       params.Author,
		RecipeName:   params.RecipeName,
		Ingredients:  model.SplitIngredients(params.Ingredients),
		RecipeSteps:  model.SplitSteps(params.RecipeSteps),
		ForumSection: params.Channel,
		Duration:     strings.TrimSpace(params.Duration),
		ImageURL:     strings.TrimSpace(params.ImageURL),
	}
	recipe.ApplyDefaults(u.now())

	if err := u.validator.Struct(recipe); err != nil {
		return nil, err
	}

	return u.recipeRepo.CreateRecipe(ctx, recipe)
}

func (u *recipeUsecase) AddComment(ctx context.Context, params AddCommentParams) error {
	if params.Author == "" {
		return ErrUnauthenticated
	}

	text := strings.TrimSpace(params.Text)
	if text == "" {
		return &validation.Error{Messages: []string{"comment text is a required field"}}
	}

	return u.recipeRepo.AppendComment(ctx, params.RecipeID, model.Comment{
		Text:   text,
		Author: params.Author,
	})
}

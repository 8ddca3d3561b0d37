package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     []*model.User
	createErr error
	findErr   error
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) GetUserByUserName(_ context.Context, userName string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.UserName == userName })
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}

	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// fakeRecipeRepo is an in-memory RecipeRepository.
type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes []*model.Recipe
	listErr error
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recipe.ID = bson.NewObjectID()
	f.recipes = append(f.recipes, recipe)
	return recipe, nil
}

func (f *fakeRecipeRepo) GetRecipe(_ context.Context, id string) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}

	for _, r := range f.recipes {
		if r.ID == objectID {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRecipeRepo) ListRecipes(_ context.Context, params repository.FilterRecipesParams) ([]*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	out := []*model.Recipe{}
	for _, r := range f.recipes {
		if params.ForumSection == nil || r.ForumSection == *params.ForumSection {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) AppendComment(_ context.Context, id string, comment model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}

	for _, r := range f.recipes {
		if r.ID == objectID {
			comment.ID = bson.NewObjectID()
			r.Comments = append(r.Comments, comment)
			r.Replies++
			r.LastPost = model.FormatLastPost(time.Now())
			return nil
		}
	}
	return nil
}

var errBoom = errors.New("boom")

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/model"
)

var ErrInvalidID = errors.New("invalid document id")

// RecipeRepository defines the interface for recipe-related database operations.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context, params FilterRecipesParams) ([]*model.Recipe, error)

	// AppendComment pushes comment onto the recipe's thread, bumps replies and
	// refreshes lastPost in one update. A missing recipe is not an error.
	AppendComment(ctx context.Context, id string, comment model.Comment) error
}

// FilterRecipesParams defines the parameters for filtering recipes.
// A nil ForumSection matches every section.
type FilterRecipesParams struct {
	ForumSection *string
}

const recipeCollection = "recipes"

type recipeMongoRepository struct {
	db *mongo.Database
}

func NewRecipeMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) RecipeRepository {
	collection := db.Collection(recipeCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "forumSection", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create recipe indexes")
	}

	return &recipeMongoRepository{db: db}
}

func (r *recipeMongoRepository) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	result, err := r.db.Collection(recipeCollection).InsertOne(ctx, recipe)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		recipe.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return recipe, nil
}

func (r *recipeMongoRepository) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(recipeCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var recipe model.Recipe
	if err := result.Decode(&recipe); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func (r *recipeMongoRepository) ListRecipes(ctx context.Context, params FilterRecipesParams) ([]*model.Recipe, error) {
	filter := bson.M{}
	if params.ForumSection != nil {
		filter["forumSection"] = *params.ForumSection
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(recipeCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recipes := []*model.Recipe{}
	for cursor.Next(ctx) {
		var recipe model.Recipe
		if err := cursor.Decode(&recipe); err != nil {
			return nil, err
		}
		recipes = append(recipes, &recipe)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (r *recipeMongoRepository) AppendComment(ctx context.Context, id string, comment model.Comment) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}

	now := time.Now()
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$inc":  bson.M{"replies": 1},
		"$set": bson.M{
			"lastPost":  model.FormatLastPost(now),
			"updatedAt": now,
		},
	}

	_, err = r.db.Collection(recipeCollection).UpdateByID(ctx, objectID, update)
	return err
}

func parseObjectID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objectID, nil
}

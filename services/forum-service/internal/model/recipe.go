package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Forum sections a recipe can be posted to.
const (
	SectionMain            = "main"
	SectionFiveIngredients = "5 Ingredients or Less"
	SectionHeirloomRecipes = "Heirloom Recipes"
	SectionCulturalWonders = "Cultural Wonders"
)

const (
	DefaultForumSection = SectionMain
	DefaultDuration     = "30 min"
	LastPostLayout      = "2006-01-02T15:04:05.000Z07:00"
)

// ForumSections lists every section in display order.
var ForumSections = []string{
	SectionMain,
	SectionFiveIngredients,
	SectionHeirloomRecipes,
	SectionCulturalWonders,
}

// Recipe represents a recipe post and its comment thread.
type Recipe struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Author       string        `bson:"author"       validate:"required"`
	RecipeName   string        `bson:"recipeName"   validate:"required"`
	Ingredients  []string      `bson:"ingredients"  validate:"min=1,dive,required"`
	RecipeSteps  []string      `bson:"recipeSteps"  validate:"min=1,dive,required"`
	ForumSection string        `bson:"forumSection" validate:"required,oneof=main '5 Ingredients or Less' 'Heirloom Recipes' 'Cultural Wonders'"`
	Comments     []Comment     `bson:"comments"`
	Replies      int           `bson:"replies"`
	LastPost     string        `bson:"lastPost"`
	Duration     string        `bson:"duration"`
	// Tag is kept for documents that carry it; nothing reads or writes it.
	Tag       [][]string `bson:"tag,omitempty"`
	ImageURL  string     `bson:"imageUrl"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
}

// Comment is one entry of a recipe's comment thread.
type Comment struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Text   string        `bson:"text"`
	Author string        `bson:"author"`
}

// ApplyDefaults fills unset optional fields as of now.
func (r *Recipe) ApplyDefaults(now time.Time) {
	r.Author = strings.TrimSpace(r.Author)
	r.RecipeName = strings.TrimSpace(r.RecipeName)

	if r.ForumSection == "" {
		r.ForumSection = DefaultForumSection
	}
	if r.Duration == "" {
		r.Duration = DefaultDuration
	}
	if r.LastPost == "" {
		r.LastPost = FormatLastPost(now)
	}
	if r.Comments == nil {
		r.Comments = []Comment{}
	}
}

// FormatLastPost renders t the way lastPost is stored: UTC, millisecond precision.
func FormatLastPost(t time.Time) string {
	return t.UTC().Format(LastPostLayout)
}

// SplitIngredients turns a comma separated list into trimmed, non-empty entries.
func SplitIngredients(raw string) []string {
	return splitNonEmpty(strings.Split(raw, ","))
}

// SplitSteps turns newline separated steps (\n or \r\n) into trimmed, non-empty entries.
func SplitSteps(raw string) []string {
	return splitNonEmpty(strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n"))
}

func splitNonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

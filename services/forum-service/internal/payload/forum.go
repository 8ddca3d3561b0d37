package payload

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type RegisterRequest struct {
	Name            string `form:"name"`
	UserName        string `form:"userName"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// CreateRecipeRequest is the body of POST /create. The channel comes from
// the query string, the author from the session.
type CreateRecipeRequest struct {
	RecipeName  string `form:"recipeName"`
	Ingredients string `form:"ingredients"`
	RecipeSteps string `form:"recipeSteps"`
	Duration    string `form:"duration"`
	ImageURL    string `form:"imageUrl"`
}

type CommentRequest struct {
	Comments string `form:"comments"`
}

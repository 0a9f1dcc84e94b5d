package api

import (
	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

func existsWhere(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// newUserResponse renders a user relative to the viewer. Anonymous viewers
// and self-views report is_subscribed = false.
func newUserResponse(db *gorm.DB, user *models.User, viewer uuid.UUID) (UserResponse, error) {
	subscribed := false
	if viewer != uuid.Nil && viewer != user.ID {
		var err error
		subscribed, err = existsWhere(db, &models.Subscription{},
			"user_id = ? AND author_id = ?", viewer, user.ID)
		if err != nil {
			return UserResponse{}, err
		}
	}
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}, nil
}

// newRecipeResponse renders the full recipe read representation, including
// the viewer-relative favorite/cart booleans. The recipe must have Author,
// Tags and Ingredients.Ingredient preloaded.
func newRecipeResponse(db *gorm.DB, recipe *models.Recipe, viewer uuid.UUID) (RecipeResponse, error) {
	ingredients := make([]IngredientAmountResponse, len(recipe.Ingredients))
	for i, row := range recipe.Ingredients {
		ingredients[i] = IngredientAmountResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		}
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	favorited := false
	inCart := false
	if viewer != uuid.Nil {
		var err error
		favorited, err = existsWhere(db, &models.Favorite{},
			"user_id = ? AND recipe_id = ?", viewer, recipe.ID)
		if err != nil {
			return RecipeResponse{}, err
		}
		inCart, err = existsWhere(db, &models.CartItem{},
			"user_id = ? AND recipe_id = ?", viewer, recipe.ID)
		if err != nil {
			return RecipeResponse{}, err
		}
	}

	author, err := newUserResponse(db, &recipe.Author, viewer)
	if err != nil {
		return RecipeResponse{}, err
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}, nil
}

func newRecipeShortResponse(recipe *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

// newSubscriptionResponse renders a subscribed author with their recipe
// short representations.
func newSubscriptionResponse(db *gorm.DB, author *models.User, viewer uuid.UUID) (SubscriptionResponse, error) {
	var recipes []models.Recipe
	if err := db.Where("author_id = ?", author.ID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return SubscriptionResponse{}, err
	}

	shorts := make([]RecipeShortResponse, len(recipes))
	for i := range recipes {
		shorts[i] = newRecipeShortResponse(&recipes[i])
	}

	user, err := newUserResponse(db, author, viewer)
	if err != nil {
		return SubscriptionResponse{}, err
	}

	return SubscriptionResponse{
		UserResponse: user,
		Recipes:      shorts,
		RecipesCount: len(shorts),
	}, nil
}

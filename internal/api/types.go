package api

import (
	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IngredientRefRequest is one entry of a recipe's ingredient list. Both
// keys are required; pointers distinguish "missing" from zero values.
type IngredientRefRequest struct {
	ID     *uuid.UUID `json:"id"`
	Amount *int       `json:"amount"`
}

type CreateRecipeRequest struct {
	Name        string                 `json:"name" binding:"required,max=200"`
	Image       string                 `json:"image" binding:"required"`
	Text        string                 `json:"text" binding:"required"`
	CookingTime int                    `json:"cooking_time" binding:"required"`
	Ingredients []IngredientRefRequest `json:"ingredients"`
	Tags        []uuid.UUID            `json:"tags"`
}

// UpdateRecipeRequest carries a partial update; absent fields stay
// unchanged.
type UpdateRecipeRequest struct {
	Name        *string                `json:"name"`
	Image       *string                `json:"image"`
	Text        *string                `json:"text"`
	CookingTime *int                   `json:"cooking_time"`
	Ingredients []IngredientRefRequest `json:"ingredients"`
	Tags        []uuid.UUID            `json:"tags"`
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type IngredientAmountResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse is the abbreviated recipe representation used by
// toggle responses and subscription listings.
type RecipeShortResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int                   `json:"recipes_count"`
}

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed-backend/internal/middleware"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"github.com/forkfeed/forkfeed-backend/internal/service"
)

type RecipeHandler struct {
	db        *gorm.DB
	recipes   *service.RecipeService
	relations *service.RelationService
	shopping  *service.ShoppingListService
	images    service.ImageStore
}

func NewRecipeHandler(db *gorm.DB, images service.ImageStore) *RecipeHandler {
	return &RecipeHandler{
		db:        db,
		recipes:   service.NewRecipeService(db),
		relations: service.NewRelationService(db),
		shopping:  service.NewShoppingListService(db),
		images:    images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	optional := middleware.OptionalAuthMiddleware(validator)
	required := middleware.AuthMiddleware(validator)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", required, h.CreateRecipe)
		recipes.PATCH("/:id", required, h.UpdateRecipe)
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/favorite", required, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", required, h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", required, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", required, h.RemoveFromCart)
	}
}

// positiveIntQuery parses a positive integer query parameter, falling back
// to the default when the value is absent, malformed or less than 1.
func positiveIntQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// toIngredientRefs rejects entries missing either key before the service
// sees them.
func toIngredientRefs(reqs []IngredientRefRequest) ([]service.IngredientRef, error) {
	refs := make([]service.IngredientRef, len(reqs))
	for i, req := range reqs {
		if req.ID == nil || req.Amount == nil {
			return nil, &service.ValidationError{Fields: map[string]string{
				"ingredients": "each entry requires an id and an amount",
			}}
		}
		refs[i] = service.IngredientRef{ID: *req.ID, Amount: *req.Amount}
	}
	return refs, nil
}

// resolveImage uploads base64 data-URI payloads through the image store;
// anything else is treated as an already-stored reference.
func (h *RecipeHandler) resolveImage(ctx context.Context, field string) (string, error) {
	if !strings.HasPrefix(field, "data:") {
		return field, nil
	}
	data, contentType, err := service.DecodeBase64Image(field)
	if err != nil {
		return "", err
	}
	return h.images.Upload(ctx, data, contentType)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewer, _ := currentUserID(c)

	filter := service.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}
	if viewer != uuid.Nil {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = &viewer
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = &viewer
		}
	}
	filter.Page = positiveIntQuery(c, "page", 1)
	filter.Limit = positiveIntQuery(c, "limit", 10)

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		results[i], err = newRecipeResponse(h.db, &recipes[i], viewer)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": results})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, _ := currentUserID(c)
	resp, err := newRecipeResponse(h.db, recipe, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	refs, err := toIngredientRefs(req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}

	imageURL, err := h.resolveImage(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, service.CreateRecipeInput{
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Ingredients: refs,
		TagIDs:      req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := newRecipeResponse(h.db, recipe, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanMutateRecipe(c.Request.Method, userID, recipe) {
		respondError(c, service.ErrForbidden)
		return
	}

	in := service.UpdateRecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if req.Image != nil {
		imageURL, err := h.resolveImage(c.Request.Context(), *req.Image)
		if err != nil {
			respondError(c, err)
			return
		}
		in.ImageURL = &imageURL
	}
	if req.Ingredients != nil {
		refs, err := toIngredientRefs(req.Ingredients)
		if err != nil {
			respondError(c, err)
			return
		}
		in.Ingredients = refs
	}
	if req.Tags != nil {
		in.TagIDs = req.Tags
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), recipeID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := newRecipeResponse(h.db, updated, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.CanMutateRecipe(c.Request.Method, userID, recipe) {
		respondError(c, service.ErrForbidden)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleRelation backs the four favorite/cart endpoints.
func (h *RecipeHandler) toggleRelation(c *gin.Context, add bool,
	toggle func(ctx context.Context, userID, recipeID uuid.UUID, add bool) (*models.Recipe, error)) {

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := toggle(c.Request.Context(), userID, recipeID, add)
	if err != nil {
		respondError(c, err)
		return
	}

	if add {
		c.JSON(http.StatusCreated, newRecipeShortResponse(recipe))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.toggleRelation(c, true, h.relations.FavoriteRecipe)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.toggleRelation(c, false, h.relations.FavoriteRecipe)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggleRelation(c, true, h.relations.CartRecipe)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.toggleRelation(c, false, h.relations.CartRecipe)
}

// DownloadShoppingCart renders the aggregated shopping list as a plain-text
// attachment. An empty cart downloads an empty file.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	payload, err := h.shopping.BuildShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(payload))
}

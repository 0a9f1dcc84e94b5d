package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

// IngredientRef points at an ingredient with the quantity used by a recipe.
type IngredientRef struct {
	ID     uuid.UUID
	Amount int
}

// CreateRecipeInput carries all fields of a new recipe aggregate.
type CreateRecipeInput struct {
	Name        string
	ImageURL    string
	Text        string
	CookingTime int
	Ingredients []IngredientRef
	TagIDs      []uuid.UUID
}

// UpdateRecipeInput carries a partial update: nil pointers and nil slices
// mean "leave unchanged".
type UpdateRecipeInput struct {
	Name        *string
	ImageURL    *string
	Text        *string
	CookingTime *int
	Ingredients []IngredientRef
	TagIDs      []uuid.UUID
}

// RecipeService persists recipes together with their ingredient-quantity
// and tag sets as one atomic unit. Ownership is not checked here; that is
// the caller's responsibility.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func validateTagIDs(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return newValidationError("tags", "the same tag cannot be added twice")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateIngredientRefs(refs []IngredientRef) error {
	seen := make(map[uuid.UUID]struct{}, len(refs))
	for _, ref := range refs {
		if ref.Amount < 1 {
			return newValidationError("amount", "must be a positive number")
		}
		if _, ok := seen[ref.ID]; ok {
			return newValidationError("ingredients", "the same ingredient cannot be added twice")
		}
		seen[ref.ID] = struct{}{}
	}
	return nil
}

// CreateRecipe validates and persists a recipe with its tag set and one
// recipe_ingredients row per reference, all inside one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, in CreateRecipeInput) (*models.Recipe, error) {
	if len(in.TagIDs) == 0 {
		return nil, newValidationError("tags", "at least one tag is required")
	}
	if err := validateTagIDs(in.TagIDs); err != nil {
		return nil, err
	}
	if len(in.Ingredients) == 0 {
		return nil, newValidationError("ingredients", "at least one ingredient is required")
	}
	if err := validateIngredientRefs(in.Ingredients); err != nil {
		return nil, err
	}
	if in.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "must be at least 1 minute")
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		ImageURL:    in.ImageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return translateDBError(err)
		}
		if err := s.replaceTags(tx, recipe, in.TagIDs); err != nil {
			return err
		}
		return s.insertIngredients(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe replaces scalar fields that were explicitly provided. A
// provided tag list replaces the tag set; a provided ingredient list
// deletes every existing recipe_ingredients row and re-inserts from
// scratch (row ids are not stable across updates).
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, in UpdateRecipeInput) (*models.Recipe, error) {
	if in.TagIDs != nil {
		if len(in.TagIDs) == 0 {
			return nil, newValidationError("tags", "at least one tag is required")
		}
		if err := validateTagIDs(in.TagIDs); err != nil {
			return nil, err
		}
	}
	if in.Ingredients != nil {
		if len(in.Ingredients) == 0 {
			return nil, newValidationError("ingredients", "at least one ingredient is required")
		}
		if err := validateIngredientRefs(in.Ingredients); err != nil {
			return nil, err
		}
	}
	if in.CookingTime != nil && *in.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "must be at least 1 minute")
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, translateDBError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.ImageURL != nil {
			updates["image_url"] = *in.ImageURL
		}
		if in.Text != nil {
			updates["text"] = *in.Text
		}
		if in.CookingTime != nil {
			updates["cooking_time"] = *in.CookingTime
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return translateDBError(err)
			}
		}
		if in.TagIDs != nil {
			if err := s.replaceTags(tx, &recipe, in.TagIDs); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := s.insertIngredients(tx, recipe.ID, in.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipeID)
}

func (s *RecipeService) replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uuid.UUID) error {
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	if len(tags) != len(tagIDs) {
		return ErrNotFound
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

func (s *RecipeService) insertIngredients(tx *gorm.DB, recipeID uuid.UUID, refs []IngredientRef) error {
	ids := make([]uuid.UUID, len(refs))
	rows := make([]models.RecipeIngredient, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ref.ID,
			Amount:       ref.Amount,
		}
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrNotFound
	}
	if err := tx.Create(&rows).Error; err != nil {
		return translateDBError(err)
	}
	return nil
}

// GetRecipe retrieves a recipe with its author, tags and ingredient rows.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, translateDBError(err)
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe and cascades through its ingredient links
// and favorite/cart memberships.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return translateDBError(err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// RecipeFilter narrows ListRecipes. Page is 1-based; Limit of 0 means no
// pagination.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Page        int
	Limit       int
}

// ListRecipes lists recipes newest first, with optional tag/author/favorite/
// cart filters.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC")

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.Where("recipes.id IN (?)",
			s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *filter.FavoritedBy))
	}
	if filter.InCartOf != nil {
		query = query.Where("recipes.id IN (?)",
			s.db.Model(&models.CartItem{}).Select("recipe_id").Where("user_id = ?", *filter.InCartOf))
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

// RelationService adds and removes members of the three user-scoped
// relation sets: favorites, shopping cart, and subscriptions. One shared
// check-then-act helper backs all of them; the uniqueness constraint on
// each membership table is the backstop for concurrent identical toggles.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// toggle inserts or deletes one membership row. A redundant toggle (add
// when present, remove when absent) yields ErrConflict.
func (s *RelationService) toggle(ctx context.Context, add bool, row any, query string, args ...any) error {
	tx := s.db.WithContext(ctx)
	var count int64
	if err := tx.Model(row).Where(query, args...).Count(&count).Error; err != nil {
		return err
	}
	if add {
		if count > 0 {
			return ErrConflict
		}
		if err := tx.Create(row).Error; err != nil {
			return translateDBError(err)
		}
		return nil
	}
	if count == 0 {
		return ErrConflict
	}
	return tx.Where(query, args...).Delete(row).Error
}

// FavoriteRecipe adds or removes a recipe from the user's favorites and
// returns the recipe for its short representation.
func (s *RelationService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID, add bool) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, translateDBError(err)
	}
	err := s.toggle(ctx, add, &models.Favorite{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CartRecipe adds or removes a recipe from the user's shopping cart.
func (s *RelationService) CartRecipe(ctx context.Context, userID, recipeID uuid.UUID, add bool) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, translateDBError(err)
	}
	err := s.toggle(ctx, add, &models.CartItem{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Subscribe adds or removes a subscription from userID to authorID.
// Self-subscription is rejected before touching the store; the check
// constraint on subscriptions covers writes that bypass this path.
func (s *RelationService) Subscribe(ctx context.Context, userID, authorID uuid.UUID, add bool) (*models.User, error) {
	if userID == authorID {
		return nil, newValidationError("subscriber", "users cannot subscribe to themselves")
	}
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, translateDBError(err)
	}
	err := s.toggle(ctx, add, &models.Subscription{UserID: userID, AuthorID: authorID},
		"user_id = ? AND author_id = ?", userID, authorID)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Subscriptions lists the authors the user is subscribed to, newest
// subscription first, with their recipes preloaded.
func (s *RelationService) Subscriptions(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var authors []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// IsSubscribed reports whether userID follows authorID.
func (s *RelationService) IsSubscribed(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

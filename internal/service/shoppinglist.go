package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

// ShoppingListService aggregates the ingredient rows of every recipe in a
// user's cart into a flat text report.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

type shoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// BuildShoppingList groups the cart's ingredient rows by (name, unit),
// sums amounts within each group, and renders one "{name}: {amount} {unit}"
// line per group. An empty cart yields an empty payload. Lines are ordered
// by ingredient name so repeated downloads are stable.
func (s *ShoppingListService) BuildShoppingList(ctx context.Context, userID uuid.UUID) (string, error) {
	cart := s.db.Model(&models.CartItem{}).Select("recipe_id").Where("user_id = ?", userID)

	var rows []shoppingListRow
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN (?)", cart).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %d %s\n", row.Name, row.Total, row.MeasurementUnit)
	}
	return b.String(), nil
}

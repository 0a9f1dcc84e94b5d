package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShoppingListEmptyCart(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewShoppingListService(db)

	shopper := testhelpers.CreateTestUser(t, db, "shopper")

	out, err := svc.BuildShoppingList(context.Background(), shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildShoppingListAggregates(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	recipes := NewRecipeService(db)
	relations := NewRelationService(db)
	svc := NewShoppingListService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	tag := testhelpers.CreateTestTag(t, db, "dinner")
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateTestIngredient(t, db, "milk", "ml")

	create := func(name string, refs []IngredientRef) uuid.UUID {
		recipe, err := recipes.CreateRecipe(ctx, author.ID, CreateRecipeInput{
			Name:        name,
			Text:        "Cook.",
			CookingTime: 10,
			Ingredients: refs,
			TagIDs:      []uuid.UUID{tag.ID},
		})
		require.NoError(t, err)
		return recipe.ID
	}

	pancakes := create("Pancakes", []IngredientRef{
		{ID: flour.ID, Amount: 200},
		{ID: milk.ID, Amount: 500},
	})
	bread := create("Bread", []IngredientRef{
		{ID: flour.ID, Amount: 300},
	})
	// Not in the cart; must not contribute.
	create("Cake", []IngredientRef{{ID: flour.ID, Amount: 999}})

	_, err := relations.CartRecipe(ctx, shopper.ID, pancakes, true)
	require.NoError(t, err)
	_, err = relations.CartRecipe(ctx, shopper.ID, bread, true)
	require.NoError(t, err)

	out, err := svc.BuildShoppingList(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour: 500 g\nmilk: 500 ml\n", out)
}

func TestBuildShoppingListScopedToUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	recipes := NewRecipeService(db)
	relations := NewRelationService(db)
	svc := NewShoppingListService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	other := testhelpers.CreateTestUser(t, db, "other")
	tag := testhelpers.CreateTestTag(t, db, "lunch")
	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, CreateRecipeInput{
		Name:        "Soup",
		Text:        "Boil.",
		CookingTime: 30,
		Ingredients: []IngredientRef{{ID: salt.ID, Amount: 5}},
		TagIDs:      []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)

	_, err = relations.CartRecipe(ctx, author.ID, recipe.ID, true)
	require.NoError(t, err)

	out, err := svc.BuildShoppingList(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, out)
}

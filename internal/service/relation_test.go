package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"github.com/forkfeed/forkfeed-backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createRecipeForRelations(t *testing.T, db *gorm.DB, authorID uuid.UUID) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        "Toast",
		Text:        "Toast the bread.",
		CookingTime: 5,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestFavoriteToggle(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	fan := testhelpers.CreateTestUser(t, db, "fan")
	recipe := createRecipeForRelations(t, db, author.ID)

	got, err := svc.FavoriteRecipe(ctx, fan.ID, recipe.ID, true)
	require.NoError(t, err)
	assert.Equal(t, recipe.Name, got.Name)

	_, err = svc.FavoriteRecipe(ctx, fan.ID, recipe.ID, true)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.FavoriteRecipe(ctx, fan.ID, recipe.ID, false)
	require.NoError(t, err)

	_, err = svc.FavoriteRecipe(ctx, fan.ID, recipe.ID, false)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.FavoriteRecipe(ctx, fan.ID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartToggle(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db, "author")
	shopper := testhelpers.CreateTestUser(t, db, "shopper")
	recipe := createRecipeForRelations(t, db, author.ID)

	_, err := svc.CartRecipe(ctx, shopper.ID, recipe.ID, true)
	require.NoError(t, err)

	_, err = svc.CartRecipe(ctx, shopper.ID, recipe.ID, true)
	assert.ErrorIs(t, err, ErrConflict)

	// Favorites and cart are independent sets.
	_, err = svc.FavoriteRecipe(ctx, shopper.ID, recipe.ID, true)
	require.NoError(t, err)

	_, err = svc.CartRecipe(ctx, shopper.ID, recipe.ID, false)
	require.NoError(t, err)

	_, err = svc.CartRecipe(ctx, shopper.ID, recipe.ID, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubscribe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	reader := testhelpers.CreateTestUser(t, db, "reader")
	author := testhelpers.CreateTestUser(t, db, "author")

	got, err := svc.Subscribe(ctx, reader.ID, author.ID, true)
	require.NoError(t, err)
	assert.Equal(t, author.Username, got.Username)

	subscribed, err := svc.IsSubscribed(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	// Not symmetric.
	subscribed, err = svc.IsSubscribed(ctx, author.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	_, err = svc.Subscribe(ctx, reader.ID, author.ID, true)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Subscribe(ctx, reader.ID, author.ID, false)
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, reader.ID, author.ID, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubscribeRejectsSelfAndUnknown(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	reader := testhelpers.CreateTestUser(t, db, "reader")

	_, err := svc.Subscribe(ctx, reader.ID, reader.ID, true)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "subscriber")

	_, err = svc.Subscribe(ctx, reader.ID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriptionsList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	reader := testhelpers.CreateTestUser(t, db, "reader")
	first := testhelpers.CreateTestUser(t, db, "first")
	second := testhelpers.CreateTestUser(t, db, "second")

	_, err := svc.Subscribe(ctx, reader.ID, first.ID, true)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, reader.ID, second.ID, true)
	require.NoError(t, err)

	authors, err := svc.Subscriptions(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)

	usernames := []string{authors[0].Username, authors[1].Username}
	assert.ElementsMatch(t, []string{first.Username, second.Username}, usernames)

	// Other users see an empty list.
	authors, err = svc.Subscriptions(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

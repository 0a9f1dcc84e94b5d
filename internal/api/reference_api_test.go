package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"github.com/forkfeed/forkfeed-backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEndpoints(t *testing.T) {
	ts := newTestServer(t)
	breakfast := testhelpers.CreateTestTag(t, ts.db, "breakfast")
	testhelpers.CreateTestTag(t, ts.db, "dinner")

	w := ts.do(t, http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tags []models.Tag
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "dinner", tags[1].Name)

	w = ts.do(t, http.MethodGet, "/api/v1/tags/"+breakfast.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tag models.Tag
	decodeJSON(t, w, &tag)
	assert.Equal(t, breakfast.Slug, tag.Slug)

	w = ts.do(t, http.MethodGet, "/api/v1/tags/"+uuid.New().String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngredientEndpoints(t *testing.T) {
	ts := newTestServer(t)
	flour := testhelpers.CreateTestIngredient(t, ts.db, "Wheat flour", "g")
	testhelpers.CreateTestIngredient(t, ts.db, "Milk", "ml")
	testhelpers.CreateTestIngredient(t, ts.db, "Rye flour", "g")

	w := ts.do(t, http.MethodGet, "/api/v1/ingredients", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ingredients []models.Ingredient
	decodeJSON(t, w, &ingredients)
	assert.Len(t, ingredients, 3)

	// Case-insensitive substring search.
	w = ts.do(t, http.MethodGet, "/api/v1/ingredients?name=FLOUR", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ingredients)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Rye flour", ingredients[0].Name)
	assert.Equal(t, "Wheat flour", ingredients[1].Name)

	w = ts.do(t, http.MethodGet, "/api/v1/ingredients?name=saffron", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ingredients)
	assert.Empty(t, ingredients)

	w = ts.do(t, http.MethodGet, "/api/v1/ingredients/"+flour.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ingredient models.Ingredient
	decodeJSON(t, w, &ingredient)
	assert.Equal(t, "Wheat flour", ingredient.Name)

	w = ts.do(t, http.MethodGet, "/api/v1/ingredients/"+uuid.New().String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/database"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory sqlite database with the schema
// migrated. Each call gets its own database; shared cache keeps it alive
// across the connection pool.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestUser inserts a user; the suffix keeps usernames and emails
// unique within a test.
func CreateTestUser(t *testing.T, db *gorm.DB, suffix string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     "user-" + suffix,
		Email:        fmt.Sprintf("%s@example.com", suffix),
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestTag inserts a tag named after the slug.
func CreateTestTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()

	tag := &models.Tag{
		Name:  slug,
		Color: fmt.Sprintf("#%06X", len(slug)*111111%0xFFFFFF),
		Slug:  slug,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestIngredient inserts an ingredient.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

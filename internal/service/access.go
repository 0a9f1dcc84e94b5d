package service

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/forkfeed/forkfeed-backend/internal/models"
)

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanMutateRecipe gates recipe mutation: safe methods pass, writes require
// the requester to be the recipe's author. The admin role is deliberately
// not consulted here.
func CanMutateRecipe(method string, userID uuid.UUID, recipe *models.Recipe) bool {
	return isSafeMethod(method) || (userID != uuid.Nil && recipe.AuthorID == userID)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed-backend/internal/middleware"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"github.com/forkfeed/forkfeed-backend/internal/service"
)

type UserHandler struct {
	db        *gorm.DB
	relations *service.RelationService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		relations: service.NewRelationService(db),
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	optional := middleware.OptionalAuthMiddleware(validator)
	required := middleware.AuthMiddleware(validator)

	users := router.Group("/users")
	{
		users.GET("/me", required, h.Me)
		users.GET("/subscriptions", required, h.Subscriptions)
		users.GET("/:id", optional, h.GetUser)
		users.POST("/:id/subscribe", required, h.Subscribe)
		users.DELETE("/:id/subscribe", required, h.Unsubscribe)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	resp, err := newUserResponse(h.db, &user, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	viewer, _ := currentUserID(c)
	resp, err := newUserResponse(h.db, &user, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Subscriptions lists the authors the requester follows, each with their
// recipes and a recipe count.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	authors, err := h.relations.Subscriptions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]SubscriptionResponse, len(authors))
	for i := range authors {
		results[i], err = newSubscriptionResponse(h.db, &authors[i], userID)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": results})
}

func (h *UserHandler) toggleSubscription(c *gin.Context, add bool) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	author, err := h.relations.Subscribe(c.Request.Context(), userID, authorID, add)
	if err != nil {
		respondError(c, err)
		return
	}

	if add {
		resp, err := newSubscriptionResponse(h.db, author, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	h.toggleSubscription(c, true)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	h.toggleSubscription(c, false)
}

// Package handler exposes user lookup over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/apperr"
	"bikemarket/backend/internal/server/httpx"
	"bikemarket/backend/internal/user/repository"
)

// UserHandler serves GET /users/:id.
type UserHandler struct {
	repo repository.Repository
}

// NewUserHandler returns a UserHandler using the given repository.
func NewUserHandler(repo repository.Repository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Register mounts the user routes on r behind requireAuth.
func (h *UserHandler) Register(r gin.IRouter, requireAuth gin.HandlerFunc) {
	r.GET("/users/:id", requireAuth, h.get)
}

func (h *UserHandler) get(c *gin.Context) {
	u, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, apperr.Internal("Failed to fetch user", err))
		return
	}
	if u == nil {
		httpx.Error(c, apperr.NotFound("User not found"))
		return
	}
	// The password hash never leaves the repository boundary.
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
}

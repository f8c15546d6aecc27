// Package handler exposes registration and login over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bikemarket/backend/internal/apperr"
	"bikemarket/backend/internal/auth/service"
	"bikemarket/backend/internal/server/httpx"
)

// AuthHandler serves POST /auth/register and POST /auth/login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler returns an AuthHandler using the given auth service.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register mounts the auth routes on r.
func (h *AuthHandler) Register(r gin.IRouter) {
	r.POST("/auth/register", h.register)
	r.POST("/auth/login", h.login)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("name, email and password are required"))
		return
	}
	summary, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.BadRequest("email and password are required"))
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

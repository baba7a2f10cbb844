package httpapi

import (
	"net/http"

	"fitness-platform/internal/activity"
	"fitness-platform/internal/auth"
	"fitness-platform/internal/exercise"
	"fitness-platform/internal/plan"
	"fitness-platform/internal/session"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Sessions   *session.Service
	Activities *activity.Service
	Plans      *plan.Service
	Exercises  *exercise.Service
}

/* ===================== AUTH ===================== */

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h Handlers) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair, err := h.Sessions.SignUp(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, "Signup failed", err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

func (h Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair, err := h.Sessions.SignIn(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, "Login failed", err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	pair, err := h.Sessions.Refresh(c.Request.Context(), req.RefreshToken, c.ClientIP())
	if err != nil {
		respondError(c, "Token refresh failed", err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// CurrentUser echoes the identity the gate attached. It deliberately does
// no lookup: a valid access token is the sole source of truth here.
func (h Handlers) CurrentUser(c *gin.Context) {
	id, err := auth.IdentityFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.Subject, "email": id.Email, "role": id.Role})
}

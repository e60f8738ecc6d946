package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/middleware"
	"invoice-management-backend/internal/models"
	"invoice-management-backend/internal/schemas"
)

type AuthHandler struct {
	identity gateway.IdentityGateway
}

func NewAuthHandler(identity gateway.IdentityGateway) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var payload schemas.SignupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	session, err := h.identity.SignUp(c.Request.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		detail(c, http.StatusInternalServerError, "Error signing up: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, authResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload schemas.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	session, err := h.identity.SignIn(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			detail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		detail(c, http.StatusInternalServerError, "Error logging in: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, authResponse(session))
}

// Me returns the identity behind the bearer token; the auth middleware has
// already resolved it.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		detail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}

func authResponse(session *models.Session) models.AuthResponse {
	return models.AuthResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
		User:        session.User,
		ExpiresIn:   session.ExpiresIn,
	}
}

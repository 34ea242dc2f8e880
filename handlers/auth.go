package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinicport/models"
	"clinicport/services/account"
	"clinicport/utils"
)

// AuthHandler exposes the portal's thin login surface.
type AuthHandler struct {
	Service account.AccountService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc account.AccountService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RegisterHandler creates a patient account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	acct, err := h.Service.Register(c.Request.Context(), input.Email, input.Name, input.Password, models.RolePatient)
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// LoginHandler verifies credentials and returns a bearer token.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	token, acct, err := h.Service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "account": acct})
}

// LogoutHandler revokes the presented token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing token", "")
		return
	}
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

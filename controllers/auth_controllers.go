package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type registerFunc func(*gin.Context, services.RegisterInput) error

func (ac *AuthController) register(c *gin.Context, message string, fn registerFunc) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := fn(c, req); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, nil)
}

// Register creates a regular user account.
func (ac *AuthController) Register(c *gin.Context) {
	ac.register(c, "User registered", func(c *gin.Context, in services.RegisterInput) error {
		_, err := ac.Auth.Register(c.Request.Context(), in)
		return err
	})
}

func (ac *AuthController) RegisterAdmin(c *gin.Context) {
	ac.register(c, "Admin registered", func(c *gin.Context, in services.RegisterInput) error {
		_, err := ac.Auth.RegisterAdmin(c.Request.Context(), in)
		return err
	})
}

func (ac *AuthController) RegisterManager(c *gin.Context) {
	ac.register(c, "Manager registered", func(c *gin.Context, in services.RegisterInput) error {
		_, err := ac.Auth.RegisterManager(c.Request.Context(), in)
		return err
	})
}

// Login -> return JWT
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, services.ErrUnauthorized) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid email or password"))
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

package controllers

import (
	"net/http"

	"github.com/JerryLinyx/NewsSummarizer/config"
	"github.com/JerryLinyx/NewsSummarizer/utils"
	"github.com/gin-gonic/gin"
)

// AuthController issues tokens for the single configured operator account.
type AuthController struct {
	cfg config.AuthConfig
}

func NewAuthController(cfg config.AuthConfig) *AuthController {
	return &AuthController{cfg: cfg}
}

func (a *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "InvalidInput", "message": err.Error()})
		return
	}

	if input.Username != a.cfg.Username || !utils.CheckPassword(input.Password, a.cfg.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "invalid username or password"})
		return
	}

	token, err := utils.GenerateJWT(a.cfg.JWTSecret, input.Username, a.cfg.TokenTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "InternalServerError", "message": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

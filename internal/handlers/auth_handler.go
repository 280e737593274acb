package handlers

import (
	"net/http"
	"strings"
	"time"

	"arizabot/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	passwordHash string
	jwtSecret    []byte
	log          *zap.Logger
}

func NewAuthHandler(passwordHash, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{passwordHash: passwordHash, jwtSecret: []byte(jwtSecret), log: log}
}

// Login exchanges the admin password for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pw := strings.TrimSpace(req.Password)
	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(pw)); err != nil {
		h.log.Warn("dashboard login rejected", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	claims := middleware.Claims{
		Subject: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	h.log.Info("dashboard login", zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"token": signed, "expires_in": int(tokenTTL.Seconds())})
}

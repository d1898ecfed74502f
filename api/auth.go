package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) createToken(userID int) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// verifyToken checks the signature and expiry and returns the embedded user id.
func (h *Handler) verifyToken(tokenStr string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, errors.New("invalid subject in token")
	}
	return userID, nil
}

// AuthMiddleware requires a valid bearer token and stores the user id in the
// request context.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorJSON(c, http.StatusUnauthorized, "Authentication invalid")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			errorJSON(c, http.StatusUnauthorized, "Authentication invalid")
			c.Abort()
			return
		}

		userID, err := h.verifyToken(parts[1])
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "Authentication invalid")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, err)
		return
	}

	user, err := h.storage.CreateUser(req.Name, req.Email, string(hash), req.Currency)
	if errors.Is(err, db.ErrDuplicateEmail) {
		errorJSON(c, http.StatusBadRequest, "Email already in use")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	token, err := h.createToken(user.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{User: *user, Token: token})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	// Unknown email and wrong password produce the same response so the
	// caller cannot probe which emails are registered.
	user, err := h.storage.GetUserByEmail(req.Email)
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.createToken(user.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{User: *user, Token: token})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.storage.GetUserByID(currentUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UserResponse{User: *user})
}

package api

import (
	"log"
	"net/http"
	"time"

	"github.com/finassist/backend/db"
	"github.com/finassist/backend/models"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

type Handler struct {
	storage       *db.Storage
	jwtSecret     string
	tokenLifetime time.Duration
}

func NewHandler(s *db.Storage, jwtSecret string, tokenLifetime time.Duration) *Handler {
	return &Handler{storage: s, jwtSecret: jwtSecret, tokenLifetime: tokenLifetime}
}

func errorJSON(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Message: message})
}

// internalError hides the failure detail from the client and logs it.
func internalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	errorJSON(c, http.StatusInternalServerError, "Something went wrong")
}

// currentUserID returns the authenticated user's id set by AuthMiddleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}

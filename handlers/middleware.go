package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/repository"
	"github.com/kimuponpon0312-alt/ronbun/service"

	"github.com/gin-gonic/gin"
)

// contextUserKey is where SessionAuth stores the resolved user
const contextUserKey = "currentUser"

// SessionAuth resolves a Bearer session token to its user and stores the
// user in the request context. Tokens are looked up by SHA-256 digest;
// the raw token never touches the database. Requests without a valid
// session pass through unauthenticated.
func SessionAuth(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userRepo == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}

		digest := sha256.Sum256([]byte(token))
		user, err := userRepo.GetUserBySessionToken(c.Request.Context(), hex.EncodeToString(digest[:]))
		if err == nil {
			c.Set(contextUserKey, user)
		}

		c.Next()
	}
}

// RequireAuth rejects requests that did not resolve to a user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AUTH_REQUIRED",
					"message": "ログインが必要です",
				},
			})
			return
		}
		c.Next()
	}
}

// UsageLimit enforces the free-plan daily limit on generation endpoints.
// Unauthenticated requests are allowed through with a warning; a
// successful generation is logged against the user's daily count.
func UsageLimit(usageService *service.UsageService, actionType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			log.Printf("[UsageLimit] no session on %s, skipping limit check", c.FullPath())
			c.Next()
			return
		}

		status := usageService.CheckLimit(c.Request.Context(), user.Email)
		if !status.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "LIMIT_EXCEEDED",
					"message": status.Error,
				},
				"usage": status,
			})
			return
		}

		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			usageService.LogUsage(c.Request.Context(), user.Email, actionType)
		}
	}
}

// currentUser returns the authenticated user, or nil
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

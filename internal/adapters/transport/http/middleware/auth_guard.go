package middleware

import (
	"net/http"

	"github.com/Miraines/ChirpChat/auth-service/internal/app/auth/token"
	customErrors "github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/errors"
	"github.com/Miraines/ChirpChat/auth-service/internal/domain/auth/model"
	"github.com/Miraines/ChirpChat/auth-service/internal/repo"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

// ContextUserKey is where AuthGuard stores the resolved user on the gin context.
const ContextUserKey = "auth.user"

// AuthGuard verifies the session cookie, loads the referenced user (password
// excluded) and attaches it to the request context. A valid token whose user
// has since disappeared yields 404, matching the historical API.
func AuthGuard(tokens *token.Util, users repo.UserRepo, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - no token provided"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			if customErrors.IsInternal(err) {
				log.Error("token parse failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - invalid token"})
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - invalid token"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), id)
		if customErrors.IsNotFound(err) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Unauthorized - user not found"})
			return
		}
		if err != nil {
			log.Error("user lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user AuthGuard attached to the request, if any.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

package middleware

import (
	"log"
	"net/http"

	"storepulse/api/utils"

	"github.com/gin-gonic/gin"
)

func tokenFromRequest(c *gin.Context) string {
	tokenString, err := c.Cookie("jwt_token")
	if err == nil && tokenString != "" {
		return tokenString
	}

	tokenString = c.GetHeader("Authorization")
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}
	return tokenString
}

// AuthRequired rejects requests without a valid identity token and attaches
// the actor identity to the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("AuthRequired: Invalid JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set("actor_id", claims.UserID)
		c.Set("actor_email", claims.Email)
		c.Next()
	}
}

// AuthOptional attaches the actor identity when a valid token is present and
// lets anonymous requests through untouched. Recording endpoints accept
// anonymous sessions, so a bad or missing token is not an error here.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if claims, err := utils.ValidateJWT(tokenString); err == nil {
				c.Set("actor_id", claims.UserID)
				c.Set("actor_email", claims.Email)
			}
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor's identity, empty for anonymous
// requests.
func ActorID(c *gin.Context) string {
	if v, ok := c.Get("actor_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

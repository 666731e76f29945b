package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/auth"
	"artfolio_backend/internal/models"
)

// AuthMiddleware requires a valid bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", models.UserRole(claims.Role))
		c.Next()
	}
}

// OptionalAuthMiddleware populates the user context when a valid token is
// present but lets anonymous requests through. Public browsing endpoints use
// it so the permission resolver can see who, if anyone, is asking.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := auth.ParseToken(tokenStr); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("role", models.UserRole(claims.Role))
			}
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := getRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}
		c.Next()
	}
}

// RequireAdmin is shorthand for the two admin tiers.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin, models.UserRoleSuperadmin)
}

// GetUserID returns the authenticated user ID, empty for anonymous requests.
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetRole returns the authenticated role, empty for anonymous requests.
func GetRole(c *gin.Context) models.UserRole {
	if role, ok := getRole(c); ok {
		return role
	}
	return ""
}

func getRole(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get("role")
	if !exists {
		return "", false
	}
	if role, ok := v.(models.UserRole); ok {
		return role, true
	}
	if roleStr, ok := v.(string); ok {
		return models.UserRole(roleStr), true
	}
	return "", false
}

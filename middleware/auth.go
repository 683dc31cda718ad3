package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/mementogram/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerToken(c)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

// OptionalAuthMiddleware populates user claims when a valid token is present
// but lets anonymous requests through. Read endpoints use it so vote status
// can fall back to 0 for unauthenticated callers.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, errMsg := parseBearerToken(c); errMsg == "" {
			c.Set(string(utils.UserContextKey), claims)
		}
		c.Next()
	}
}

func parseBearerToken(c *gin.Context) (*utils.UserClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "Authorization header is required"
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, "Invalid token format"
	}

	token := bearerToken[1]
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !parsedToken.Valid {
		return nil, "Invalid token"
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, "Invalid token claims"
	}

	role, _ := claims["role"].(string)

	return &utils.UserClaims{
		UserID: uint(userIDFloat),
		Role:   role,
	}, ""
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guiladg/wacookieexpress/internal/token"
)

// claimsKey is where Auth stores the verified access claims in the context.
const claimsKey = "jwtPayload"

// Auth verifies the access-token cookie and stashes its claims for the
// handler. Missing or invalid tokens end the request with 401.
func Auth(tokens token.Service, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		message := func(m string) string {
			if production {
				return ""
			}
			return m
		}

		accessToken, err := c.Cookie("access_token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message("No access token")})
			return
		}

		claims, err := tokens.VerifyAccess(accessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message("Invalid access token")})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose access token does not
// carry the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok || claims.Role != role {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// Claims returns the access claims stored by Auth.
func Claims(c *gin.Context) (*token.AccessClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*token.AccessClaims)
	return claims, ok
}

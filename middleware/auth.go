package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/services"
	"github.com/Viniciustertuliano/photovault/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

var errNoToken = errors.New("no bearer token")

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			message := "Authentication token is invalid or expired"
			if errors.Is(err, errNoToken) {
				message = "Authentication is required"
			}
			utils.Error(c, http.StatusUnauthorized, message)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and lets the
// request through anonymously otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromHeader(c.GetHeader("Authorization"))
		if err == nil {
			c.Set(principalKey, principal)
		} else if !errors.Is(err, errNoToken) {
			logger.Debugf("ignoring bad bearer token on %s: %v", c.Request.URL.Path, err)
		}
		c.Next()
	}
}

// Principal returns the caller attached by the auth middleware, or nil.
func Principal(c *gin.Context) *services.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := value.(*services.Principal)
	return principal
}

func principalFromHeader(header string) (*services.Principal, error) {
	if header == "" {
		return nil, errNoToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, utils.ErrInvalidToken
	}

	claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	id, err := claims.AccountID()
	if err != nil {
		return nil, err
	}
	return &services.Principal{ID: id, Role: claims.Role}, nil
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"messaging-service/pkg/logger"
	"messaging-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = logger.FieldUserID

var (
	errMissingToken = errors.New("authorization token is required")
	errInvalidToken = errors.New("invalid token")
	errNoUserClaim  = errors.New("user_id claim is missing")
)

type AuthMiddleware struct {
	jwtSecret []byte
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: []byte(jwtSecret),
	}
}

// RequireAuth accepts a Bearer token in the Authorization header, or a
// token query parameter for websocket upgrades where browsers cannot set
// headers.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := am.authenticate(c)
		if err != nil {
			lg := logger.Ctx(c.Request.Context())
			lg.Debug().Err(err).Msg("rejected unauthenticated request")
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error(), "")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func (am *AuthMiddleware) authenticate(c *gin.Context) (string, error) {
	tokenString := bearerToken(c.GetHeader("Authorization"))
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return "", errMissingToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return am.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	return userIDClaim(claims)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// userIDClaim accepts the id as a string, or as a number for tokens minted
// by older issuers.
func userIDClaim(claims jwt.MapClaims) (string, error) {
	switch v := claims["user_id"].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", errNoUserClaim
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", errNoUserClaim
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

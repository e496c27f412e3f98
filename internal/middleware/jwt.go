// jwt.go issues and checks session tokens.
//
// A session is anonymous: uploading a PDF starts one, and the returned
// token (a signed JWT carrying the session ID) is all a client needs to run
// tasks on that document. No user accounts, nothing stored server-side but
// the document itself.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/models"
)

const (
	sessionContextKey = "session_id"
	tokenIssuer       = "text-analyzer-api"
)

// SessionClaims extends standard JWT claims with the session ID.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewSessionID returns a fresh random session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// GenerateSessionToken creates a signed token for sessionID that expires
// after ttl.
func GenerateSessionToken(sessionID, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates a token string and returns its claims.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

var errNoBearer = errors.New("missing bearer token")

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errNoBearer
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

// SessionAuth returns middleware that requires a valid session token.
// It stores the session ID in the context for handlers.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "Missing or invalid Authorization header. Use 'Bearer <token>' from the upload response",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		claims, err := ParseSessionToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired session token",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, claims.SessionID)
		c.Next()
	}
}

// OptionalSession is like SessionAuth but lets requests without a token
// through. A request with a bad token is still rejected.
func OptionalSession(secret string) gin.HandlerFunc {
	required := SessionAuth(secret)
	return func(c *gin.Context) {
		if _, err := bearerToken(c); err != nil {
			c.Next()
			return
		}
		required(c)
	}
}

// GetSessionID retrieves the session ID set by SessionAuth, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

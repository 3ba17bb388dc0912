package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cognitonow/beauty-book-next/config"
)

// TokenVerifier resolves an opaque bearer token into a caller identity.
// Production uses the Auth0 JWKS validator; tests substitute a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// auth0Verifier validates RS256 JWTs against the tenant's JWKS endpoint.
type auth0Verifier struct {
	validator *validator.Validator
}

// NewAuth0Verifier builds a TokenVerifier backed by Auth0. The JWKS keys are
// cached for five minutes.
func NewAuth0Verifier(cfg *config.Config) (TokenVerifier, error) {
	issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return &auth0Verifier{validator: jwtValidator}, nil
}

func (a *auth0Verifier) Verify(ctx context.Context, token string) (string, error) {
	claims, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", err
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return "", fmt.Errorf("token carries no subject")
	}
	return validated.RegisteredClaims.Subject, nil
}

// Authenticate checks the Authorization header, resolves the bearer token
// through the injected verifier and stores the caller identity in the Gin
// context. Missing, malformed, expired or otherwise invalid tokens all map
// to 401; the token itself is opaque to everything downstream.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "No token provided")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		subject, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", subject)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetUserID extracts the verified caller identity from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

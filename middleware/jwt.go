package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"edusync/config"
	"edusync/models"
)

const (
	// TokenCookieName is the cookie carrying the JWT for browser clients.
	TokenCookieName = "token"

	// TokenTTL bounds how long an issued token stays valid.
	TokenTTL = 3 * time.Hour
)

// AuthClaims is the claim set minted at registration and login: the subject
// is the user id, plus email and role for per-route authorization.
type AuthClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT mints a signed, time-bounded token for the user.
func GenerateJWT(userID uuid.UUID, email string, role models.Role) (string, error) {
	cfg := config.AppConfig
	if cfg == nil || cfg.JWTKey == "" || cfg.JWTIssuer == "" || cfg.JWTAudience == "" {
		return "", errors.New("jwt configuration is missing")
	}

	now := time.Now()
	claims := AuthClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTKey))
}

// tokenFromRequest picks the token out of the Authorization header, falling
// back to the token cookie. An explicit header always wins.
func tokenFromRequest(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", errors.New("invalid Authorization header format")
		}
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	if cookie := c.Cookies(TokenCookieName); cookie != "" {
		return cookie, nil
	}

	return "", errors.New("missing authentication token")
}

// JWTMiddleware authenticates the request and stores the caller's identity
// in locals: userId (uuid.UUID), userRole and userEmail (string).
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString, err := tokenFromRequest(c)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid authentication token", nil)
	}

	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	if !claims.VerifyIssuer(config.AppConfig.JWTIssuer, true) ||
		!claims.VerifyAudience(config.AppConfig.JWTAudience, true) {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	c.Locals("userId", userID)
	c.Locals("userRole", claims.Role)
	c.Locals("userEmail", claims.Email)

	return c.Next()
}

// RequireRole returns a middleware that lets only the given role through.
// Runs after JWTMiddleware; an authenticated caller with the wrong role gets
// a forbidden response, not an unauthenticated one.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid authentication token", nil)
		}
		if userRole != string(role) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}

// SetTokenCookie attaches the issued token as an HTTP-only cookie with the
// same lifetime as the token itself.
func SetTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // behind HTTPS this should be flipped on
	})
}

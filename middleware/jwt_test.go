package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edusync/config"
	"edusync/models"
)

const (
	testKey      = "test-secret-key"
	testIssuer   = "edusync"
	testAudience = "edusync-client"
)

func init() {
	config.AppConfig = &config.Config{
		JWTKey:      testKey,
		JWTIssuer:   testIssuer,
		JWTAudience: testAudience,
	}
}

func newAuthedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID := c.Locals("userId").(uuid.UUID)
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": userID.String(),
			"role":   c.Locals("userRole"),
		})
	})
	app.Get("/instructor-only", JWTMiddleware, RequireRole(models.RoleInstructor), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func signToken(t *testing.T, key string, claims AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func studentClaims(userID uuid.UUID, issuedAt time.Time) AuthClaims {
	return AuthClaims{
		Email: "ann@x.com",
		Role:  string(models.RoleStudent),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	app := newAuthedApp()
	userID := uuid.New()

	token, err := GenerateJWT(userID, "ann@x.com", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateJWTFailsWithoutConfig(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()

	config.AppConfig = &config.Config{JWTKey: testKey} // issuer and audience missing
	_, err := GenerateJWT(uuid.New(), "ann@x.com", models.RoleStudent)
	assert.Error(t, err)
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	app := newAuthedApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareCookieTransport(t *testing.T) {
	app := newAuthedApp()

	token, err := GenerateJWT(uuid.New(), "ann@x.com", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareHeaderBeatsCookie(t *testing.T) {
	app := newAuthedApp()

	token, err := GenerateJWT(uuid.New(), "ann@x.com", models.RoleStudent)
	require.NoError(t, err)

	// A garbage header must not fall back to the perfectly good cookie.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareExpiredToken(t *testing.T) {
	app := newAuthedApp()

	claims := studentClaims(uuid.New(), time.Now().Add(-TokenTTL-time.Minute))
	token := signToken(t, testKey, claims)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareWrongKey(t *testing.T) {
	app := newAuthedApp()

	token := signToken(t, "some-other-key", studentClaims(uuid.New(), time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareTamperedClaim(t *testing.T) {
	app := newAuthedApp()

	token, err := GenerateJWT(uuid.New(), "ann@x.com", models.RoleStudent)
	require.NoError(t, err)

	// Splice the payload to claim the Instructor role without re-signing.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	tampered := strings.Replace(string(payload), "Student", "Instructor", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(tampered))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+strings.Join(parts, "."))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareWrongIssuerOrAudience(t *testing.T) {
	app := newAuthedApp()

	badIssuer := studentClaims(uuid.New(), time.Now())
	badIssuer.Issuer = "someone-else"
	badAudience := studentClaims(uuid.New(), time.Now())
	badAudience.Audience = jwt.ClaimStrings{"another-app"}

	for _, claims := range []AuthClaims{badIssuer, badAudience} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testKey, claims))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	app := newAuthedApp()

	token, err := GenerateJWT(uuid.New(), "ann@x.com", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/instructor-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// Authenticated but not allowed: forbidden, not unauthenticated.
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

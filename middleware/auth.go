package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"conference-central/model"
)

const ContextKey = "identity"

// Authorize verifies a bearer token when one is present and stores it under
// ContextKey. Requests without an Authorization header pass through
// anonymously; handlers that need a caller reject them themselves.
func Authorize(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Filter: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAuthorization) == ""
		},
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		ContextKey:   ContextKey,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentUser returns the verified caller, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *model.Identity {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &model.Identity{UserId: sub, Email: email, Nickname: name}
}

func IssueToken(secret string, identity model.Identity, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = identity.UserId
	claims["email"] = identity.Email
	claims["name"] = identity.Nickname
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/pkg/jwt"
)

// Locals keys cargadas por AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalClaims = "claims"
)

// TokenVerifier puerto del proveedor de identidad: valida el token y devuelve sus claims.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token y deja uid, email y claims en c.Locals.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "No token provided")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "No token provided")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "No token provided")
		}
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}
		c.Locals(LocalUserID, claims.UID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(CodeUnauthorized, msg))
}

// GetUserID devuelve el uid del usuario autenticado (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del token, si lo trae.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetClaims devuelve los claims completos del token o nil.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

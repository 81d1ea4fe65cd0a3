package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminJwtMiddleware guards operator routes with an HS256 bearer token signed with secret.
// An empty secret leaves the route open.
func AdminJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if secret == "" {
			return ctx.Next()
		}

		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return DetailResponse(ctx, fiber.StatusUnauthorized, "Missing token")
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return DetailResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return DetailResponse(ctx, fiber.StatusUnauthorized, "Invalid claims")
		}

		if sub, err := claims.GetSubject(); err == nil {
			ctx.Locals("admin_subject", sub)
		}
		return ctx.Next()
	}
}

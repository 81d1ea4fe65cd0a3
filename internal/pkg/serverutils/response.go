package serverutils

import (
	"robi-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// DetailResponse writes the {"detail": ...} body used by every non-answer response.
func DetailResponse(ctx *fiber.Ctx, status int, detail string) error {
	return ctx.Status(status).JSON(dto.DetailResponse{Detail: detail})
}

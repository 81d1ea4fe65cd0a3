package controller

import (
	"errors"

	"robi-be/internal/dto"
	"robi-be/internal/pkg/serverutils"
	"robi-be/internal/service"
	"robi-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type assistantController struct {
	service     service.IAssistantService
	adminSecret string
}

// NewAssistantController builds the public routes. adminSecret, when set, protects
// /reload_resource with a bearer token.
func NewAssistantController(service service.IAssistantService, adminSecret string) IAssistantController {
	return &assistantController{service: service, adminSecret: adminSecret}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Get("/ask", c.Ask)
	r.Get("/reload_resource", serverutils.AdminJwtMiddleware(c.adminSecret), c.Reload)
	r.Get("/health", c.Health)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.DetailResponse(ctx, fiber.StatusBadRequest, "Query not provided")
	}
	if err := serverutils.ValidateRequest(req, map[string]string{"Query": "Query not provided"}); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), &req)
	if errors.Is(err, agent.ErrEmptyQuery) {
		return serverutils.DetailResponse(ctx, fiber.StatusBadRequest, "Query not provided")
	}
	if err != nil {
		return serverutils.DetailResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(res)
}

func (c *assistantController) Reload(ctx *fiber.Ctx) error {
	if err := c.service.Reload(ctx.UserContext()); err != nil {
		return serverutils.DetailResponse(ctx, fiber.StatusInternalServerError, "Failed to reload resources: "+err.Error())
	}
	return serverutils.DetailResponse(ctx, fiber.StatusOK, "Resources reloaded successfully.")
}

func (c *assistantController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health(ctx.UserContext()))
}

package controller

import (
	ws "robi-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IEventsController interface {
	RegisterRoutes(r fiber.Router)
}

type eventsController struct {
	hub *ws.Hub
}

// NewEventsController streams domain events to websocket clients as JSON text frames.
func NewEventsController(hub *ws.Hub) IEventsController {
	return &eventsController{hub: hub}
}

func (c *eventsController) RegisterRoutes(r fiber.Router) {
	r.Get("/events", upgradeRequired, websocket.New(func(conn *websocket.Conn) {
		ws.ServeWs(c.hub, conn)
	}))
}

func upgradeRequired(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}

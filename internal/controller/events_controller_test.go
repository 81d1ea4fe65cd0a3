package controller

import (
	"net/http/httptest"
	"testing"

	"robi-be/internal/pkg/logger"
	"robi-be/internal/pkg/serverutils"
	ws "robi-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsRequiresUpgrade(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	NewEventsController(ws.NewHub(nil, logger.NewNopLogger())).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

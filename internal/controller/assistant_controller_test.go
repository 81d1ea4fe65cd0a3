package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robi-be/internal/dto"
	"robi-be/internal/pkg/serverutils"
	"robi-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistantService struct {
	asked     []string
	askErr    error
	reloadErr error
	reloads   int
}

func (f *fakeAssistantService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	f.asked = append(f.asked, req.Query)
	if f.askErr != nil {
		return nil, f.askErr
	}
	return &dto.AskResponse{
		Query:   req.Query,
		Answer:  "reply",
		Timings: agent.Timings{Category: "location", ResponseTime: 0.25, TotalTime: 0.5},
	}, nil
}

func (f *fakeAssistantService) Reload(ctx context.Context) error {
	f.reloads++
	return f.reloadErr
}

func (f *fakeAssistantService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{Status: "ok", ResourcesLoaded: true, Documents: 2}
}

func newTestApp(svc *fakeAssistantService, secret string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	NewAssistantController(svc, secret).RegisterRoutes(app)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestAsk(t *testing.T) {
	svc := &fakeAssistantService{}
	app := newTestApp(svc, "")

	status, body := do(t, app, httptest.NewRequest("GET", "/ask?query=Where%20is%20room%201%3F", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Where is room 1?"}, svc.asked)
	assert.Equal(t, "Where is room 1?", body["query"])
	assert.Equal(t, "reply", body["answer"])
	timings := body["timings"].(map[string]interface{})
	assert.Equal(t, 0.25, timings["response_time"])
	assert.NotContains(t, timings, "cached")
}

func TestAskWithoutQuery(t *testing.T) {
	svc := &fakeAssistantService{}
	app := newTestApp(svc, "")

	status, body := do(t, app, httptest.NewRequest("GET", "/ask", nil))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Query not provided", body["detail"])
	assert.Empty(t, svc.asked)
}

func TestAskErrors(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		app := newTestApp(&fakeAssistantService{askErr: agent.ErrEmptyQuery}, "")
		status, body := do(t, app, httptest.NewRequest("GET", "/ask?query=%20%20", nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Query not provided", body["detail"])
	})

	t.Run("unexpected failure", func(t *testing.T) {
		app := newTestApp(&fakeAssistantService{askErr: errors.New("boom")}, "")
		status, body := do(t, app, httptest.NewRequest("GET", "/ask?query=hi", nil))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "boom", body["detail"])
	})
}

func TestReload(t *testing.T) {
	svc := &fakeAssistantService{}
	app := newTestApp(svc, "")

	status, body := do(t, app, httptest.NewRequest("GET", "/reload_resource", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Resources reloaded successfully.", body["detail"])

	svc.reloadErr = errors.New("file Nav.pdf failed to process (state failed)")
	status, body = do(t, app, httptest.NewRequest("GET", "/reload_resource", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to reload resources: file Nav.pdf failed to process (state failed)", body["detail"])
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestReloadRequiresAdminToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signedToken(t, "other"), status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + signedToken(t, "secret"), status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssistantService{}
			app := newTestApp(svc, "secret")

			req := httptest.NewRequest("GET", "/reload_resource", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			status, _ := do(t, app, req)

			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusOK {
				assert.Equal(t, 1, svc.reloads)
			} else {
				assert.Zero(t, svc.reloads)
			}
		})
	}
}

func TestAskIsNotGuarded(t *testing.T) {
	app := newTestApp(&fakeAssistantService{}, "secret")
	status, _ := do(t, app, httptest.NewRequest("GET", "/ask?query=hi", nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeAssistantService{}, "")
	status, body := do(t, app, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["resources_loaded"])
	assert.Equal(t, float64(2), body["documents"])
}

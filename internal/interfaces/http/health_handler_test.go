package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/ppic-api/internal/interfaces/http"
)

func TestHealth_OkYDegradado(t *testing.T) {
	up := apphttp.PingFunc(func(context.Context) error { return nil })
	down := apphttp.PingFunc(func(context.Context) error { return errors.New("connection refused") })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Health: apphttp.NewHealthHandler("ppic-api", map[string]apphttp.Pinger{"postgres": up})})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])

	app = fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Health: apphttp.NewHealthHandler("ppic-api", map[string]apphttp.Pinger{"postgres": up, "redis": down})})
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "up", deps["postgres"])
	assert.Contains(t, deps["redis"], "connection refused")
}

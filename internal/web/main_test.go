package web

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scharfcsh/amsid/internal/config"
)

func newTestConfig() *config.Config {
	return &config.Config{
		DevMode: true,
		Complex: config.Complex{PublicLength: 12, SecureLength: 32},
		Webserver: config.Webserver{
			Port:    8080,
			MaxSize: 64,
		},
	}
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestNewPanicsWithoutConfig(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestCheckAlive(t *testing.T) {
	s := New(newTestConfig())

	status, body := get(t, s.App, CheckAlivePath)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", body)

	s.alive.Store(false)

	status, _ = get(t, s.App, CheckAlivePath)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestRoutes(t *testing.T) {
	s := New(newTestConfig())

	status, body := get(t, s.App, "/id?size=8")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Regexp(t, `^\{"id":"[A-Za-z0-9_-]{8}"\}$`, body)

	status, body = get(t, s.App, "/id?size=65")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, `"code":400`)

	status, _ = get(t, s.App, "/unknown")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMetrics(t *testing.T) {
	s := New(newTestConfig())

	status, _ := get(t, s.App, "/id")
	require.Equal(t, fiber.StatusOK, status)

	status, body := get(t, s.App, MetricsPath)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "amsid_ids_generated_total")
	assert.Contains(t, body, "amsid_pool_refills_total")
}

func TestShutdownInDevMode(t *testing.T) {
	s := New(newTestConfig())

	s.Shutdown()

	assert.False(t, s.alive.Load())
}

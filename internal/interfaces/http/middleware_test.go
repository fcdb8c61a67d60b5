package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/veon-api/internal/interfaces/http"
	"github.com/jhoicas/veon-api/pkg/logger"
)

func ping(c *fiber.Ctx) error { return c.SendString("pong") }

func TestSecureHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.SecureHeaders(false))
	app.Get("/ping", ping)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RateLimit(2))
	app.Get("/ping", ping)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, resp).Error.Code)
}

func TestRateLimit_Desactivado(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RateLimit(0))
	app.Get("/ping", ping)

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestRequestLogger_RegistraStatusYError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ping", ping)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
	assert.Contains(t, buf.String(), `"status":200`)

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

type observation struct {
	method, route string
	status        int
}

type fakeObserver struct{ seen []observation }

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetrics_UsaPatronDeRuta(t *testing.T) {
	obs := &fakeObserver{}
	app := fiber.New()
	app.Use(apphttp.Metrics(obs))
	app.Get("/items/:id", ping)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{http.MethodGet, "/items/:id", fiber.StatusOK}, obs.seen[0])
	assert.Equal(t, observation{http.MethodGet, "unmatched", fiber.StatusNotFound}, obs.seen[1])
}

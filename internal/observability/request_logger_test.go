package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestLoggerCountsRequests(t *testing.T) {
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, int64(3), metrics.RequestTotal("/ping", http.MethodGet, http.StatusOK))
	require.Equal(t, int64(1), metrics.RequestTotal("/missing", http.MethodGet, http.StatusNotFound))
	require.Zero(t, metrics.RequestTotal("/ping", http.MethodPost, http.StatusOK))
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/pkg/serverutils"
	internalWS "brandlink-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	log := logger.NewNopLogger()
	h := NewActivityHandler(internalWS.NewHub(nil, log), "ws-secret", log)
	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestAuthenticate(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// valid token but a plain GET, not an upgrade
	token, err := serverutils.SignUserToken("ws-secret", uuid.NewString(), time.Minute)
	require.NoError(t, err)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

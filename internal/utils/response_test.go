package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/braillebridge/teacher-console/internal/utils"
)

func TestSendSuccessEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "fetched", fiber.Map{"id": 7})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "fetched", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Success)
	require.Equal(t, "invalid identifier", body.Message)
	require.Nil(t, body.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/default", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/default", nil))
	require.NoError(t, err)

	var body utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "success", body.Message)
}

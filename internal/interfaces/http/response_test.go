package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prazo estourado ou requisição cancelada no meio de uma operação não é
// falha interna: a resposta precisa sinalizar que vale repetir.
func TestFail_ContextoExpirado_RespostaRetentavel(t *testing.T) {
	for name, cause := range map[string]error{
		"deadline":  context.DeadlineExceeded,
		"cancelado": context.Canceled,
	} {
		t.Run(name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/t", func(c *fiber.Ctx) error { return fail(c, cause) })

			resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
			var env struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
			assert.False(t, env.Success)
			assert.Equal(t, "TIMEOUT", env.Error.Code)
		})
	}
}

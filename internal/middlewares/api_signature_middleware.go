package middlewares

import (
	"encoding/json"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// APISignatureMiddleware rejects requests whose hash header does not match the
// canonical request built from the request URI and body.
func APISignatureMiddleware(verifier *auth.APISignatureVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		apiKeyHeader := c.Get(commerce.HeaderAPIKey)
		hashHeader := c.Get(commerce.HeaderHash)
		requestURI := c.OriginalURL()

		var body json.RawMessage
		if raw := c.Body(); len(raw) > 0 {
			body = append(json.RawMessage(nil), raw...)
		}

		if err := verifier.VerifyRequest(requestURI, apiKeyHeader, hashHeader, body); err != nil {
			log.Error().
				Err(err).
				Str("path", requestURI).
				Str("method", c.Method()).
				Str("session_id", c.Get(commerce.HeaderSessionID)).
				Str("request_id", c.Get(commerce.HeaderRequestID)).
				Msg("API signature verification failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid API signature",
			})
		}

		log.Debug().
			Str("path", requestURI).
			Str("method", c.Method()).
			Msg("API signature verified successfully")

		return c.Next()
	}
}

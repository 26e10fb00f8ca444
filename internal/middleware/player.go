package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	// PlayerIDHeader carries the caller's identity on REST requests.
	PlayerIDHeader = "X-Player-ID"
	// PlayerIDQuery is the fallback for WebSocket handshakes, where browsers
	// cannot set headers.
	PlayerIDQuery = "playerId"

	maxPlayerIDLen = 64
)

// EnsurePlayerID resolves the caller's player ID and stores a copy of it in
// Locals("playerID"). Seats and turns are keyed by this ID.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get(PlayerIDHeader))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query(PlayerIDQuery))
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if len(playerID) > maxPlayerIDLen {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player ID is too long",
			})
		}

		// header and query values alias the request buffer; seats outlive it
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}

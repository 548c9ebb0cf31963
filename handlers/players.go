// handlers/players.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"life-counter-api/services"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, matchService *services.MatchService) {
	players := app.Group("/players")

	players.Post("/new-match", func(c *fiber.Ctx) error {
		var req services.NewMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := matchService.NewMatch(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	players.Put("/increase-life", func(c *fiber.Ctx) error {
		var req services.IncreaseLifeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := playerService.IncreaseLife(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	players.Put("/decrease-life", func(c *fiber.Ctx) error {
		var req services.DecreaseLifeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := playerService.DecreaseLife(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	players.Put("/set-life", func(c *fiber.Ctx) error {
		var req services.SetLifeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := playerService.SetLife(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	players.Put("/reset-life", func(c *fiber.Ctx) error {
		var req services.ResetLifeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := playerService.ResetLife(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	players.Get("/match-status/:matchId", func(c *fiber.Ctx) error {
		matchID, err := c.ParamsInt("matchId")
		if err != nil || matchID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid MatchId"})
		}
		content, message, serr := matchService.MatchStatus(c.Context(), uint(matchID))
		if serr != nil {
			return fail(c, serr)
		}
		return ok(c, content, message)
	})

	players.Delete("/end-match/:matchId", func(c *fiber.Ctx) error {
		matchID, err := c.ParamsInt("matchId")
		if err != nil || matchID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid MatchId"})
		}
		message, serr := matchService.EndMatch(c.Context(), uint(matchID))
		if serr != nil {
			return fail(c, serr)
		}
		return ok(c, nil, message)
	})

	players.Get("/stats", func(c *fiber.Ctx) error {
		content, message, err := matchService.Stats(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})
}

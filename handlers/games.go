// handlers/games.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"life-counter-api/services"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	admins := app.Group("/admins")

	admins.Post("/games", func(c *fiber.Ctx) error {
		var req services.CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, err := gameService.CreateGame(c.Context(), req)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	admins.Put("/games/:gameId", func(c *fiber.Ctx) error {
		gameID, err := c.ParamsInt("gameId")
		if err != nil || gameID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid GameId"})
		}
		var req services.EditGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid request body"})
		}
		content, message, serr := gameService.EditGame(c.Context(), uint(gameID), req)
		if serr != nil {
			return fail(c, serr)
		}
		return ok(c, content, message)
	})

	admins.Delete("/games/:gameId", func(c *fiber.Ctx) error {
		gameID, err := c.ParamsInt("gameId")
		if err != nil || gameID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid GameId"})
		}
		message, serr := gameService.RemoveGame(c.Context(), uint(gameID))
		if serr != nil {
			return fail(c, serr)
		}
		return ok(c, nil, message)
	})

	admins.Get("/games", func(c *fiber.Ctx) error {
		content, message, err := gameService.ListGames(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return ok(c, content, message)
	})

	admins.Get("/games/:gameId", func(c *fiber.Ctx) error {
		gameID, err := c.ParamsInt("gameId")
		if err != nil || gameID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(Response{Message: "invalid GameId"})
		}
		content, message, serr := gameService.GetGame(c.Context(), uint(gameID))
		if serr != nil {
			return fail(c, serr)
		}
		return ok(c, content, message)
	})
}

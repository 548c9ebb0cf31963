// handlers/response.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"life-counter-api/services"
)

// Response is the envelope every endpoint answers with: the operation's
// content (null on failure) and a human-readable message.
type Response struct {
	Content any    `json:"content"`
	Message string `json:"message"`
}

func ok(c *fiber.Ctx, content any, message string) error {
	return c.JSON(Response{Content: content, Message: message})
}

func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindConflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(Response{Message: err.Error()})
}

package serverutils

import (
	"errors"

	"cet-mentor-be/internal/repository/memory"
	"cet-mentor-be/internal/service"
	"cet-mentor-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed domain errors into HTTP statuses so
// handlers can just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, rag.ErrInvalidInput):
			code = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, service.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, memory.ErrDataUnavailable):
			code = fiber.StatusServiceUnavailable
			message = "Knowledge base is unavailable, try again later"
		case errors.Is(err, rag.ErrUpstreamGeneration):
			code = fiber.StatusBadGateway
			message = "Answer generation is temporarily unavailable"
		}

		return c.Status(code).JSON(ErrorResponse(code, message))
	}
}

package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inquiry-be/pkg/llm"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses: validation
// and input errors become 400, an exhausted LLM provider chain 503,
// everything else 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Detail))
		case errors.Is(err, llm.ErrProviderUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse("language model providers are unreachable"))
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
		}
	}
}

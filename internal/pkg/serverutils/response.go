package serverutils

import (
	"errors"

	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/apperror"
	"quicknotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func ErrorResponse(message string) dto.MessageResponse {
	return dto.MessageResponse{Message: message}
}

// WriteError renders err as {"message": ...}. Internal failures are logged
// with their cause; the client only ever sees the generic text.
func WriteError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
	}

	appErr := apperror.From(err)
	if appErr.Kind == apperror.Internal {
		log.Error("http", "Request failed", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  appErr.Err,
		})
	}
	return ctx.Status(appErr.StatusCode()).JSON(ErrorResponse(appErr.Message))
}

// ErrorHandlerMiddleware must be the outermost handler that can see errors:
// everything returned further down the chain is rendered here.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return WriteError(ctx, err, log)
		}
		return nil
	}
}

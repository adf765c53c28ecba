package serverutils

import (
	"errors"

	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks the struct tags of req. Any violation becomes
// InvalidInput carrying message.
func ValidateRequest(req interface{}, message string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperror.New(apperror.InvalidInput, message, err)
	}
	return apperror.NewInternal(err)
}

// BindJSON decodes the body into req and validates it. An empty body decodes
// to the zero value so it fails validation with message, like a body with
// the fields left out.
func BindJSON(ctx *fiber.Ctx, req interface{}, message string) error {
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(req); err != nil {
			return apperror.New(apperror.InvalidInput, constant.MsgInvalidBody, err)
		}
	}
	return ValidateRequest(req, message)
}

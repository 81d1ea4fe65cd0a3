package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidationError carries a client-facing message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRequest runs the struct's validate tags. Field messages can be overridden per
// field name; unlisted failures fall back to "<field> is <tag>".
func ValidateRequest(req interface{}, messages ...map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag())
		for _, m := range messages {
			if custom, ok := m[fe.Field()]; ok {
				msg = custom
			}
		}
		parts = append(parts, msg)
	}
	return &ValidationError{Message: strings.Join(parts, "; ")}
}

// ErrorHandler maps handler errors to a {"detail": ...} body.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return DetailResponse(ctx, fiber.StatusBadRequest, verr.Message)
	}
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return DetailResponse(ctx, ferr.Code, ferr.Message)
	}
	return DetailResponse(ctx, fiber.StatusInternalServerError, err.Error())
}

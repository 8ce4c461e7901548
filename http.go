package yoga

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const (
	messageUnauthorized = "Unauthorized"
	messageInternal     = "An unexpected server error occurred"
)

// NewErrorHandler returns a fiber.ErrorHandler that renders rich errors as
// {"message": ...} with the status matching their category
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(MessageResponse{Message: fiberErr.Message})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, messageInternal).
				WithCode(errors.CodeInternal)
		}

		status := StatusFromError(richErr)

		logger.Info(
			"HTTP error handler",
			"path", c.Path(),
			"status", status,
			"error", richErr.Message,
			"category", richErr.Category,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)

		switch status {
		case http.StatusUnauthorized:
			return c.Status(status).JSON(MessageResponse{Message: messageUnauthorized})
		case http.StatusInternalServerError:
			return c.Status(status).JSON(MessageResponse{Message: messageInternal})
		}

		body := fiber.Map{"message": richErr.Message}
		if richErr.Category == errors.CategoryValidation && len(richErr.Metadata) > 0 {
			body["errors"] = richErr.Metadata
		}
		return c.Status(status).JSON(body)
	}
}

// StatusFromError maps an error to an HTTP status code
func StatusFromError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryBadInput, errors.CategoryValidation:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryConflict:
		return http.StatusConflict
	}

	if richErr.Code >= 400 && richErr.Code < 600 {
		return richErr.Code
	}
	return http.StatusInternalServerError
}

// ParseID reads a positive numeric path parameter
func ParseID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(ErrInvalidID.Message, errors.CategoryBadInput).
			WithTextCode(TextCodeInvalidID).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"param": name, "value": raw})
	}
	return id, nil
}

// parseBody decodes the request body, reporting failures as bad input
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

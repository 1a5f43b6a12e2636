package errors

import (
	stderrors "errors"

	"video-annotator/pkg/errors/i18n"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func HandleError(c *fiber.Ctx, log *zap.SugaredLogger, err error) error {
	if err == nil {
		return nil
	}

	var ae *AnnotationError
	if stderrors.As(err, &ae) {
		if ae.Err != nil {
			log.Warnw("request failed", "code", ae.Code, "path", c.Path(), "error", ae.Err)
		}
	} else {
		log.Errorw("unexpected error", "path", c.Path(), "error", err)
	}

	code, message := Describe(err)
	return c.Status(StatusFor(code)).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// Describe returns the client-facing code and message for err. Validation
// messages are passed through; the rest are translated.
func Describe(err error) (code, message string) {
	var ae *AnnotationError
	if !stderrors.As(err, &ae) {
		return CodeInternal, i18n.T(CodeInternal, "Internal error")
	}
	if ae.Code == CodeValidation {
		return ae.Code, ae.Message
	}
	return ae.Code, i18n.T(ae.Code, ae.Message)
}

func StatusFor(code string) int {
	switch code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeStorageUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

package serverutils

import (
	"errors"
	"fmt"
	"log"

	"ai-recruiter-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindBadRequest:
		return fiber.StatusBadRequest
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindUpstream:
		return fiber.StatusBadGateway
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware turns errors returned by handlers, and panics, into
// the standard error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] panic in %s %s: %v", ctx.Method(), ctx.Path(), r)
				err = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, fmt.Sprint(r)))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		var appErr *apperror.Error
		if errors.As(err, &appErr) && code != fiber.StatusBadGateway {
			message = appErr.Message
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

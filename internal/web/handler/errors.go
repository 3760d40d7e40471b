package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the json body of every failed request.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// ErrorHandler answers failed requests with an ErrorResponse. Errors without
// a fiber status are internal and their text is not sent to the client.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := fiber.ErrInternalServerError.Message

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(ErrorResponse{Code: code, Error: msg})
}

// BadRequest wraps err as a 400 response.
func BadRequest(err error) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

package server

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/iov-one/lockup/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code"`
}

// StatusCode returns the HTTP status that describes err.
func StatusCode(err error) int {
	var ferr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case stderrors.As(err, &ferr):
		return ferr.Code
	case errors.ErrUnauthorized.Is(err):
		return fiber.StatusUnauthorized
	case errors.ErrNotFound.Is(err):
		return fiber.StatusNotFound
	case errors.ErrState.Is(err), errors.ErrDuplicate.Is(err):
		return fiber.StatusConflict
	case errors.ErrInput.Is(err),
		errors.ErrEmpty.Is(err),
		errors.ErrAmount.Is(err),
		errors.ErrModel.Is(err),
		errors.ErrType.Is(err),
		errors.ErrOverflow.Is(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError renders err as JSON. Internal failures are logged and their
// details are not exposed.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := StatusCode(err)
	resp := errorResponse{Error: err.Error(), Code: errors.ABCICode(err)}
	if status == fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", c.Path(),
			"method", c.Method(),
			"err", err)
		resp.Error = "internal error"
	}
	return c.Status(status).JSON(resp)
}

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/infra-status-service/internal/pkg/errors"
)

// idParam - положительный числовой :id из пути
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidRequest.WithMessage("id must be a positive integer")
	}
	return id, nil
}

func invalidBody() error {
	return errors.ErrInvalidRequest.WithMessage("Invalid request body")
}

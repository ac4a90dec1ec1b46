package utils

import (
	"errors"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ResponseFromError writes err through the status table.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	status, msg := StatusFor(err)

	body := fiber.Map{"error": msg}
	var de *domain.Error
	if errors.As(err, &de) && len(de.Fields) > 0 {
		body["fields"] = de.Fields
	}
	return ctx.Status(status).JSON(body)
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data fiber.Map) error {
	return ctx.Status(status).JSON(data)
}

package v1

import (
	"github.com/gofiber/fiber/v2"
)

func registerUtils(r fiber.Router) {
	utils := r.Group("/utils")

	utils.Get("/health-check/", func(c *fiber.Ctx) error {
		return c.JSON(true)
	})
}

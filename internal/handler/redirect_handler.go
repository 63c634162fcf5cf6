package handler

import (
	"github.com/gofiber/fiber/v2"
)

// LegacyLessonRedirect moves the old chapter based lesson URLs to the
// section based layout. Path segments are forwarded as received.
func LegacyLessonRedirect(c *fiber.Ctx) error {
	target := "/courses/" + c.Params("course") +
		"/section/" + c.Params("lesson") +
		"/lesson/" + c.Params("chapter")
	return c.Redirect(target, fiber.StatusPermanentRedirect)
}

package handlers

import (
	"html"

	"github.com/gofiber/fiber/v3"
)

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div class="p-3 rounded-lg bg-red-50 dark:bg-red-900/30 text-red-700 dark:text-red-300 text-sm">` + html.EscapeString(message) + `</div>`,
	)
}

// isHTMX reports whether the request was issued by HTMX rather than a full
// page navigation.
func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

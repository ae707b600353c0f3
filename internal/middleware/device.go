package middleware

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"walink/internal/generator"
)

// Session and locals keys.
const (
	DeviceKey = "device"
	FormKey   = "form"
)

// Device makes sure every visitor carries a device id. The id lives in the
// session and keys the visitor's history and theme in storage.
func Device(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	id, _ := sess.Get(DeviceKey).(string)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		sess.Set(DeviceKey, id)
	}

	c.Locals(DeviceKey, id)
	return c.Next()
}

// DeviceID returns the id set by Device, or "" outside of it.
func DeviceID(c fiber.Ctx) string {
	id, _ := c.Locals(DeviceKey).(string)
	return id
}

// LoadForm returns the form saved in the session, or an empty form.
func LoadForm(c fiber.Ctx) generator.Form {
	var form generator.Form

	sess := session.FromContext(c)
	if sess == nil {
		return form
	}
	raw, _ := sess.Get(FormKey).(string)
	if raw == "" {
		return form
	}
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		slog.Warn("discarding unreadable form state", "device", DeviceID(c), "error", err)
		return generator.Form{}
	}
	return form
}

// SaveForm keeps form in the session for the next request.
func SaveForm(c fiber.Ctx, form generator.Form) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	raw, err := json.Marshal(form)
	if err != nil {
		slog.Error("failed to encode form state", "error", err)
		return
	}
	sess.Set(FormKey, string(raw))
}

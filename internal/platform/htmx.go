package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Client event names dispatched through the HX-Trigger response header.
const (
	EventCopy  = "walink:copy"
	EventShare = "walink:share"
	EventTheme = "walink:theme"
)

// Request headers read by the HTMX adapter.
const (
	HeaderColorScheme  = "Sec-CH-Prefers-Color-Scheme"
	HeaderShareCapable = "X-Share-Capable"
)

// HTMX drives the browser through HTMX response triggers: clipboard and share
// requests become client events that the page script performs.
type HTMX struct {
	c      fiber.Ctx
	events map[string]any
}

// NewHTMX creates an adapter bound to one request.
func NewHTMX(c fiber.Ctx) *HTMX {
	return &HTMX{c: c, events: make(map[string]any)}
}

// PrefersDark reads the color scheme client hint.
func (h *HTMX) PrefersDark() bool {
	return strings.EqualFold(strings.Trim(h.c.Get(HeaderColorScheme), `"`), "dark")
}

// WriteClipboard asks the page to copy text.
func (h *HTMX) WriteClipboard(_ context.Context, text string) error {
	return h.trigger(EventCopy, map[string]string{"text": text})
}

// Share asks the page to open the native share sheet. Pages advertise support
// with the X-Share-Capable header.
func (h *HTMX) Share(_ context.Context, data ShareData) error {
	if h.c.Get(HeaderShareCapable) != "true" {
		return ErrShareUnsupported
	}
	return h.trigger(EventShare, data)
}

// ApplyTheme asks the page to switch its color scheme without a reload.
func (h *HTMX) ApplyTheme(theme string) error {
	return h.trigger(EventTheme, theme)
}

func (h *HTMX) trigger(name string, detail any) error {
	h.events[name] = detail
	payload, err := json.Marshal(h.events)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	h.c.Set("HX-Trigger", string(payload))
	return nil
}

package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"walink/internal/config"
	"walink/internal/generator"
	"walink/internal/middleware"
	"walink/internal/models"
	"walink/internal/platform"
)

// CountryOption is one entry of the country dropdown.
type CountryOption struct {
	models.Country
	FlagURL  string
	Selected bool
}

// GeneratorHandler serves the generator page and its HTMX fragments.
type GeneratorHandler struct {
	cfg  *config.Config
	opts generator.Options
}

// NewGeneratorHandler creates a new generator handler. opts.Platform is
// replaced per request by an adapter bound to that request.
func NewGeneratorHandler(cfg *config.Config, opts generator.Options) *GeneratorHandler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &GeneratorHandler{cfg: cfg, opts: opts}
}

// controller resumes the device's state for this request.
func (h *GeneratorHandler) controller(c fiber.Ctx) (*generator.Controller, *platform.HTMX) {
	adapter := platform.NewHTMX(c)
	opts := h.opts
	opts.Platform = adapter
	return generator.New(c.Context(), middleware.DeviceID(c), middleware.LoadForm(c), opts), adapter
}

func (h *GeneratorHandler) data(ctrl *generator.Controller, list []models.Country) fiber.Map {
	state := ctrl.State()
	builder := ctrl.Builder()

	options := make([]CountryOption, 0, len(list))
	for _, country := range list {
		options = append(options, CountryOption{
			Country:  country,
			FlagURL:  builder.FlagURL(country.Code),
			Selected: country.Code == state.Country.Code,
		})
	}

	return MergeBranding(fiber.Map{
		"Title":       h.cfg.SiteTitle,
		"State":       state,
		"Dark":        state.Theme.IsDark(),
		"Countries":   options,
		"CountryFlag": builder.FlagURL(state.Country.Code),
	}, h.cfg)
}

// render saves the form back to the session and renders name. Only the index
// page is wrapped in the layout.
func (h *GeneratorHandler) render(c fiber.Ctx, ctrl *generator.Controller, name string) error {
	middleware.SaveForm(c, ctrl.Form())
	data := h.data(ctrl, ctrl.Catalog().All())
	if name == "index" {
		return c.Render(name, data)
	}
	return c.Render(name, data, "")
}

// Index renders the full generator page. It asks the browser for its color
// scheme hint so later requests can pick the initial theme.
func (h *GeneratorHandler) Index(c fiber.Ctx) error {
	c.Set("Accept-CH", platform.HeaderColorScheme)
	c.Vary(platform.HeaderColorScheme)
	ctrl, _ := h.controller(c)
	return h.render(c, ctrl, "index")
}

// Countries renders the dropdown entries matching ?q=.
func (h *GeneratorHandler) Countries(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	matches := ctrl.Catalog().Search(c.Query("q"))
	return c.Render("partials/countries", h.data(ctrl, matches), "")
}

// SelectCountry switches the active country and re-formats the number.
func (h *GeneratorHandler) SelectCountry(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	if err := ctrl.SelectCountry(c.FormValue("country")); err != nil {
		return htmxError(c, "Unknown country")
	}
	return h.render(c, ctrl, "partials/app")
}

// InputNumber applies a keystroke of the number field and re-renders it.
func (h *GeneratorHandler) InputNumber(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	ctrl.InputNumber(c.FormValue("phone"))
	return h.render(c, ctrl, "partials/number")
}

// SetMessage stores the message without swapping anything.
func (h *GeneratorHandler) SetMessage(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	ctrl.SetMessage(c.FormValue("message"))
	middleware.SaveForm(c, ctrl.Form())
	return c.SendStatus(fiber.StatusNoContent)
}

// Generate builds the link from the submitted form. Fields missing from the
// submission keep their session values. A submitted number over the country's
// digit limit is rejected rather than replaced by the previous one.
func (h *GeneratorHandler) Generate(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)

	if code := c.FormValue("country"); code != "" {
		if err := ctrl.SelectCountry(code); err != nil {
			return htmxError(c, "Unknown country")
		}
	}
	if c.Request().PostArgs().Has("message") {
		ctrl.SetMessage(c.FormValue("message"))
	}
	if c.Request().PostArgs().Has("phone") && !ctrl.InputNumber(c.FormValue("phone")) {
		h.opts.Logger.Debug("link rejected", "device", middleware.DeviceID(c), "error", "too many digits")
		ctrl.RejectNumber()
		return h.render(c, ctrl, "partials/app")
	}

	// A rejected number leaves the notice on the state; the page shows it.
	if _, err := ctrl.Generate(c.Context()); err != nil {
		h.opts.Logger.Debug("link rejected", "device", middleware.DeviceID(c), "error", err)
	}
	return h.render(c, ctrl, "partials/app")
}

// Result re-renders the result panel, used to clear the copied flag.
func (h *GeneratorHandler) Result(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	return h.render(c, ctrl, "partials/result")
}

// Copy asks the page to copy the generated link.
func (h *GeneratorHandler) Copy(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	ctrl.Copy(c.Context())
	return h.render(c, ctrl, "partials/result")
}

// Share asks the page to open the native share sheet.
func (h *GeneratorHandler) Share(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	ctrl.ShareLink(c.Context())
	return h.render(c, ctrl, "partials/app")
}

// Restore brings a history item back into the form.
func (h *GeneratorHandler) Restore(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	if _, err := ctrl.Restore(c.Params("id")); err != nil {
		if errors.Is(err, generator.ErrHistoryNotFound) {
			return htmxError(c, "That history entry no longer exists")
		}
		return err
	}
	return h.render(c, ctrl, "partials/app")
}

// ClearHistory empties the device's history.
func (h *GeneratorHandler) ClearHistory(c fiber.Ctx) error {
	ctrl, _ := h.controller(c)
	ctrl.ClearHistory(c.Context())
	return h.render(c, ctrl, "partials/history")
}

// ToggleTheme flips the theme. HTMX clients switch in place, others reload.
func (h *GeneratorHandler) ToggleTheme(c fiber.Ctx) error {
	ctrl, adapter := h.controller(c)
	theme := ctrl.ToggleTheme(c.Context())

	if !isHTMX(c) {
		return c.Redirect().To("/")
	}
	if err := adapter.ApplyTheme(string(theme)); err != nil {
		return err
	}
	return h.render(c, ctrl, "partials/theme_toggle")
}

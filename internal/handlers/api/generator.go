package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"walink/internal/generator"
	"walink/internal/history"
	"walink/internal/links"
	"walink/internal/middleware"
	"walink/internal/models"
	"walink/internal/phone"
	"walink/internal/platform"
	"walink/internal/validation"
)

// UpstreamStatus reports the last probe results of external services.
type UpstreamStatus interface {
	Status() []models.UpstreamStatusResponse
}

// CountryResponse is one catalog entry with its flag image.
type CountryResponse struct {
	models.Country
	FlagURL string `json:"flag_url"`
}

// GeneratorHandler exposes the generator operations as a JSON API.
type GeneratorHandler struct {
	opts      generator.Options
	validate  *validation.Validator
	upstreams UpstreamStatus
}

// NewGeneratorHandler creates a new API generator handler. upstreams may be nil.
func NewGeneratorHandler(opts generator.Options, validate *validation.Validator, upstreams UpstreamStatus) *GeneratorHandler {
	if validate == nil {
		validate = validation.New()
	}
	return &GeneratorHandler{opts: opts, validate: validate, upstreams: upstreams}
}

// controller loads the device's history. API calls have no browser to drive,
// so clipboard and share are unavailable.
func (h *GeneratorHandler) controller(c fiber.Ctx, form generator.Form) *generator.Controller {
	opts := h.opts
	opts.Platform = platform.Nop{}
	return generator.New(c.Context(), middleware.DeviceID(c), form, opts)
}

// bind decodes and validates a JSON body into out, writing the error response
// itself when that fails.
func (h *GeneratorHandler) bind(c fiber.Ctx, out any) (bool, error) {
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return false, jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(out); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return false, jsonError(c, fiber.StatusBadRequest, fieldErrs.Error())
		}
		return false, jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	return true, nil
}

// Countries returns the catalog, optionally filtered by ?q=.
func (h *GeneratorHandler) Countries(c fiber.Ctx) error {
	builder := h.builder()
	matches := h.opts.Catalog.Search(c.Query("q"))

	out := make([]CountryResponse, 0, len(matches))
	for _, country := range matches {
		out = append(out, CountryResponse{Country: country, FlagURL: builder.FlagURL(country.Code)})
	}
	return jsonSuccess(c, out)
}

// Format applies the number field rule to a keystroke.
func (h *GeneratorHandler) Format(c fiber.Ctx) error {
	var req models.FormatRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	country, ok := h.opts.Catalog.ByCode(req.Country)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "unknown country")
	}

	formatted, accepted := phone.Accept(req.Current, req.Phone, country.Mask)
	return jsonSuccess(c, models.FormatResponse{
		Country:   country.Code,
		Formatted: formatted,
		Digits:    phone.Strip(formatted),
		MaxDigits: phone.MaxDigits(country.Mask),
		Accepted:  accepted,
	})
}

// CreateLink generates a link and records it in the device's history.
func (h *GeneratorHandler) CreateLink(c fiber.Ctx) error {
	var req models.LinkRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	ctrl := h.controller(c, generator.Form{})
	if err := ctrl.SelectCountry(req.Country); err != nil {
		return jsonError(c, fiber.StatusNotFound, "unknown country")
	}
	if !ctrl.InputNumber(req.Phone) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "phone number has too many digits for this country")
	}
	ctrl.SetMessage(req.Message)

	item, err := ctrl.Generate(c.Context())
	if err != nil {
		if errors.Is(err, links.ErrInvalidNumber) {
			return jsonError(c, fiber.StatusUnprocessableEntity, generator.NoticeInvalidNumber)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to generate link")
	}

	state := ctrl.State()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data": models.LinkResponse{
			Link:         state.GeneratedLink,
			QRCodeURL:    state.QRCodeURL,
			PhoneDisplay: item.PhoneNumber,
			Share:        state.Share,
			Hint:         state.Hint,
		},
	})
}

// History returns the device's history, newest first.
func (h *GeneratorHandler) History(c fiber.Ctx) error {
	items := h.controller(c, generator.Form{}).State().History
	if items == nil {
		items = []models.HistoryItem{}
	}
	return jsonSuccess(c, items)
}

// ClearHistory empties the device's history.
func (h *GeneratorHandler) ClearHistory(c fiber.Ctx) error {
	h.controller(c, generator.Form{}).ClearHistory(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore maps a history item back to country and number.
func (h *GeneratorHandler) Restore(c fiber.Ctx) error {
	ctrl := h.controller(c, generator.Form{})
	r, err := ctrl.Restore(c.Params("id"))
	if err != nil {
		if errors.Is(err, generator.ErrHistoryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "history item not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to restore history item")
	}

	state := ctrl.State()
	item, _ := history.Find(state.History, c.Params("id"))
	return jsonSuccess(c, models.RestoreResponse{
		Item:           item,
		Country:        state.Country.Code,
		CountryMatched: r.Matched,
		LocalNumber:    r.LocalNumber,
		QRCodeURL:      state.QRCodeURL,
	})
}

// Upstreams returns the last probe result of each external service.
func (h *GeneratorHandler) Upstreams(c fiber.Ctx) error {
	if h.upstreams == nil {
		return jsonSuccess(c, []models.UpstreamStatusResponse{})
	}
	return jsonSuccess(c, h.upstreams.Status())
}

func (h *GeneratorHandler) builder() links.Builder {
	if h.opts.Builder == (links.Builder{}) {
		return links.Default()
	}
	return h.opts.Builder
}

// Package generator owns the per-device application state and the operations
// a user can perform on it.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"walink/internal/countries"
	"walink/internal/history"
	"walink/internal/links"
	"walink/internal/models"
	"walink/internal/phone"
	"walink/internal/platform"
)

// User-facing notices.
const (
	NoticeInvalidNumber    = "Please enter a valid phone number."
	NoticeShareUnsupported = "Web Share API not supported on this browser. Use the buttons below."
)

// Share sheet text.
const (
	ShareTitle = "WhatsApp Link"
	ShareText  = "Check out this WhatsApp link!"
)

var (
	ErrUnknownCountry  = errors.New("unknown country")
	ErrHistoryNotFound = errors.New("history item not found")
)

// Store persists history and theme for a device.
type Store interface {
	LoadHistory(ctx context.Context, device string) []models.HistoryItem
	SaveHistory(ctx context.Context, device string, items []models.HistoryItem) error
	ClearHistory(ctx context.Context, device string) error
	LoadTheme(ctx context.Context, device string) (models.Theme, bool)
	SaveTheme(ctx context.Context, device string, theme models.Theme) error
}

// Recorder receives anonymous generation outcomes.
type Recorder interface {
	RecordOutcome(countryCode, outcome string)
}

// Options wires a controller to its collaborators. Catalog and Store are
// required; the rest have defaults.
type Options struct {
	Catalog  *countries.Catalog
	Builder  links.Builder
	Store    Store
	Platform platform.Adapter
	Recorder Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// Controller is the single owner of one device's state for one interaction.
// It is not safe for concurrent use.
type Controller struct {
	device   string
	state    State
	catalog  *countries.Catalog
	builder  links.Builder
	store    Store
	platform platform.Adapter
	recorder Recorder
	log      *slog.Logger
	now      func() time.Time
}

// New loads the device's history and theme and resumes form.
func New(ctx context.Context, device string, form Form, opts Options) *Controller {
	c := &Controller{
		device:   device,
		catalog:  opts.Catalog,
		builder:  opts.Builder,
		store:    opts.Store,
		platform: opts.Platform,
		recorder: opts.Recorder,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if c.builder == (links.Builder{}) {
		c.builder = links.Default()
	}
	if c.platform == nil {
		c.platform = platform.Nop{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}

	country := c.catalog.Resolve(form.CountryCode)
	form.CountryCode = country.Code

	c.state = State{
		Form:    form,
		Country: country,
		History: c.store.LoadHistory(ctx, device),
	}

	if theme, ok := c.store.LoadTheme(ctx, device); ok {
		c.state.Theme = theme
	} else if c.platform.PrefersDark() {
		c.state.Theme = models.ThemeDark
	} else {
		c.state.Theme = models.ThemeLight
	}

	return c
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	s := c.state
	s.Now = c.now()
	if s.GeneratedLink != "" {
		s.Share = c.builder.Share(s.GeneratedLink)
	}
	if phone.Strip(s.LocalNumber) != "" {
		s.Hint = phone.Hint(s.Country.DialCode, s.LocalNumber)
	}
	return s
}

// Form returns the part of the state kept between requests.
func (c *Controller) Form() Form {
	return c.state.Form
}

// Catalog returns the country list the controller works with.
func (c *Controller) Catalog() *countries.Catalog {
	return c.catalog
}

// Builder returns the link builder in use.
func (c *Controller) Builder() links.Builder {
	return c.builder
}

// SelectCountry switches the active country and re-applies its mask to the
// digits already entered.
func (c *Controller) SelectCountry(code string) error {
	country, ok := c.catalog.ByCode(code)
	if !ok {
		return ErrUnknownCountry
	}
	c.state.Country = country
	c.state.CountryCode = country.Code
	c.state.LocalNumber = phone.Reformat(c.state.LocalNumber, country.Mask)
	return nil
}

// InputNumber applies a change of the number field. It returns false when the
// input was ignored for exceeding the country's digit limit.
func (c *Controller) InputNumber(value string) bool {
	formatted, ok := phone.Accept(c.state.LocalNumber, value, c.state.Country.Mask)
	c.state.LocalNumber = formatted
	return ok
}

// RejectNumber marks a submitted number as unusable. The previous link is
// left alone and nothing is added to history.
func (c *Controller) RejectNumber() {
	c.state.Notice = NoticeInvalidNumber
	c.record(c.state.Country.Code, models.OutcomeRejected)
}

// SetMessage replaces the pre-filled message.
func (c *Controller) SetMessage(msg string) {
	c.state.Message = msg
}

// Generate builds the link and code URL from the form and records the result
// in history. On rejection only the notice is set and ErrInvalidNumber is returned.
func (c *Controller) Generate(ctx context.Context) (models.HistoryItem, error) {
	country := c.state.Country
	link, err := c.builder.Build(country.DialCode, c.state.LocalNumber, c.state.Message)
	if err != nil {
		c.RejectNumber()
		return models.HistoryItem{}, err
	}

	c.state.GeneratedLink = link
	c.state.QRCodeURL = c.builder.QRCodeURL(link)
	c.state.CopiedUntil = 0

	item := history.NewItem(history.PhoneDisplay(country.DialCode, c.state.LocalNumber), c.state.Message, link, c.now())
	item.ID = history.UniqueID(c.state.History, item.ID)
	c.state.History = history.Prepend(c.state.History, item)
	if err := c.store.SaveHistory(ctx, c.device, c.state.History); err != nil {
		c.log.Error("failed to persist history", "device", c.device, "error", err)
	}

	c.record(country.Code, models.OutcomeGenerated)
	return item, nil
}

// Restore brings a history item back into the form. The link, message and code
// URL are always restored; country and number only when the stored number starts
// with a known dial code.
func (c *Controller) Restore(id string) (history.Restored, error) {
	item, ok := history.Find(c.state.History, id)
	if !ok {
		return history.Restored{}, ErrHistoryNotFound
	}

	c.state.GeneratedLink = item.Link
	c.state.Message = item.Message
	c.state.QRCodeURL = c.builder.QRCodeURL(item.Link)
	c.state.CopiedUntil = 0

	r := history.Restore(c.catalog, item)
	if r.Matched {
		c.state.Country = r.Country
		c.state.CountryCode = r.Country.Code
		c.state.LocalNumber = r.LocalNumber
	}

	c.record(c.state.Country.Code, models.OutcomeRestored)
	return r, nil
}

// ClearHistory empties the device's history.
func (c *Controller) ClearHistory(ctx context.Context) {
	c.state.History = nil
	if err := c.store.ClearHistory(ctx, c.device); err != nil {
		c.log.Error("failed to clear history", "device", c.device, "error", err)
	}
}

// ToggleTheme flips and persists the theme.
func (c *Controller) ToggleTheme(ctx context.Context) models.Theme {
	c.state.Theme = c.state.Theme.Toggle()
	if err := c.store.SaveTheme(ctx, c.device, c.state.Theme); err != nil {
		c.log.Error("failed to persist theme", "device", c.device, "error", err)
	}
	return c.state.Theme
}

// Copy puts the generated link on the clipboard. Failures are logged only.
func (c *Controller) Copy(ctx context.Context) {
	if c.state.GeneratedLink == "" {
		return
	}
	if err := c.platform.WriteClipboard(ctx, c.state.GeneratedLink); err != nil {
		c.log.Error("failed to copy", "error", err)
		return
	}
	c.state.CopiedUntil = c.now().Add(CopiedFor).UnixMilli()
}

// ShareLink opens the native share sheet for the generated link. Missing
// capability sets a notice; other failures are logged only.
func (c *Controller) ShareLink(ctx context.Context) {
	if c.state.GeneratedLink == "" {
		c.state.Notice = NoticeShareUnsupported
		return
	}
	err := c.platform.Share(ctx, platform.ShareData{
		Title: ShareTitle,
		Text:  ShareText,
		URL:   c.state.GeneratedLink,
	})
	switch {
	case errors.Is(err, platform.ErrShareUnsupported):
		c.state.Notice = NoticeShareUnsupported
	case err != nil:
		c.log.Info("error sharing", "error", err)
	}
}

func (c *Controller) record(countryCode, outcome string) {
	if c.recorder != nil {
		c.recorder.RecordOutcome(countryCode, outcome)
	}
}

// Package links builds messaging deep links and the URLs derived from them.
package links

import (
	"errors"
	"strings"

	"walink/internal/models"
	"walink/internal/phone"
)

// MinDigits is the smallest local number accepted for a link.
const MinDigits = 3

// Default endpoints.
const (
	DefaultMessagingDomain = "wa.me"
	DefaultQREndpoint      = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultFlagEndpoint    = "https://flagcdn.com/w40/"
)

// ErrInvalidNumber is returned when the local number has fewer than MinDigits digits.
var ErrInvalidNumber = errors.New("please enter a valid phone number")

// Builder renders links against a set of endpoints. The zero value is not
// usable; start from Default() or NewBuilder.
type Builder struct {
	MessagingDomain string
	QREndpoint      string
	FlagEndpoint    string
}

// Default returns a builder for the public endpoints.
func Default() Builder {
	return Builder{
		MessagingDomain: DefaultMessagingDomain,
		QREndpoint:      DefaultQREndpoint,
		FlagEndpoint:    DefaultFlagEndpoint,
	}
}

// NewBuilder returns a builder where empty arguments fall back to the defaults.
func NewBuilder(messagingDomain, qrEndpoint, flagEndpoint string) Builder {
	b := Default()
	if messagingDomain != "" {
		b.MessagingDomain = strings.TrimSuffix(messagingDomain, "/")
	}
	if qrEndpoint != "" {
		b.QREndpoint = qrEndpoint
	}
	if flagEndpoint != "" {
		b.FlagEndpoint = flagEndpoint
		if !strings.HasSuffix(b.FlagEndpoint, "/") {
			b.FlagEndpoint += "/"
		}
	}
	return b
}

// Build joins the dial code (without "+") and the local digits into one number
// and returns https://<domain>/<number>?text=<message>.
func (b Builder) Build(dialCode, localDigits, message string) (string, error) {
	digits := phone.Strip(localDigits)
	if len(digits) < MinDigits {
		return "", ErrInvalidNumber
	}
	full := strings.TrimPrefix(dialCode, "+") + digits
	return "https://" + b.MessagingDomain + "/" + full + "?text=" + EncodeURIComponent(message), nil
}

// QRCodeURL embeds link in a request to the code rendering service.
func (b Builder) QRCodeURL(link string) string {
	return b.QREndpoint + "?size=200x200&data=" + EncodeURIComponent(link) + "&bgcolor=ffffff"
}

// FlagURL returns the flag image for a two-letter country code.
func (b Builder) FlagURL(code string) string {
	return b.FlagEndpoint + strings.ToLower(code) + ".png"
}

// Share returns the fixed share destinations for link.
func (b Builder) Share(link string) models.ShareLinks {
	enc := EncodeURIComponent(link)
	return models.ShareLinks{
		WhatsApp: "https://" + b.MessagingDomain + "/?text=" + enc,
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + enc,
		Twitter:  "https://twitter.com/intent/tweet?url=" + enc + "&text=Check%20this%20out",
		Email:    "mailto:?subject=WhatsApp%20Link&body=" + enc,
	}
}

var defaultBuilder = Default()

// Build renders a link with the default endpoints.
func Build(dialCode, localDigits, message string) (string, error) {
	return defaultBuilder.Build(dialCode, localDigits, message)
}

// QRCodeURL renders a code URL with the default endpoint.
func QRCodeURL(link string) string {
	return defaultBuilder.QRCodeURL(link)
}

// Share renders share links with the default endpoints.
func Share(link string) models.ShareLinks {
	return defaultBuilder.Share(link)
}

// FlagURL renders a flag URL with the default endpoint.
func FlagURL(code string) string {
	return defaultBuilder.FlagURL(code)
}

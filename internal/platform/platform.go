// Package platform isolates environment-dependent behavior (color scheme
// detection, clipboard, native share) from the link logic.
package platform

import (
	"context"
	"errors"
)

// ErrShareUnsupported is returned when the client has no native share capability.
var ErrShareUnsupported = errors.New("web share not supported")

// ShareData is the payload handed to the native share sheet.
type ShareData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Adapter is implemented by each environment the generator runs in.
type Adapter interface {
	// PrefersDark reports the environment's color scheme preference.
	PrefersDark() bool
	// WriteClipboard copies text to the user's clipboard.
	WriteClipboard(ctx context.Context, text string) error
	// Share opens the native share sheet.
	Share(ctx context.Context, data ShareData) error
}

// Nop is an adapter with no capabilities.
type Nop struct{}

func (Nop) PrefersDark() bool { return false }

func (Nop) WriteClipboard(context.Context, string) error { return errors.ErrUnsupported }

func (Nop) Share(context.Context, ShareData) error { return ErrShareUnsupported }

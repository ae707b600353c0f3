package generator

import (
	"time"

	"walink/internal/models"
)

// CopiedFor is how long the copied flag stays set after a successful copy.
const CopiedFor = 2 * time.Second

// Form is the editable part of the state. It survives between requests in the
// device's session.
type Form struct {
	CountryCode   string `json:"country"`
	LocalNumber   string `json:"local_number"` // Formatted for display
	Message       string `json:"message"`
	GeneratedLink string `json:"link,omitempty"`
	QRCodeURL     string `json:"qr_code_url,omitempty"`
	CopiedUntil   int64  `json:"copied_until,omitempty"` // Epoch milliseconds
}

// State is everything a page render needs.
type State struct {
	Form
	Country models.Country
	History []models.HistoryItem
	Theme   models.Theme
	Notice  string
	Share   models.ShareLinks
	Hint    models.PhoneHint
	Now     time.Time
}

// Copied reports whether the copied flag is still set.
func (s State) Copied() bool {
	return s.CopiedUntil > 0 && s.Now.UnixMilli() < s.CopiedUntil
}

// HasLink reports whether a link has been generated or restored.
func (s State) HasLink() bool {
	return s.GeneratedLink != ""
}

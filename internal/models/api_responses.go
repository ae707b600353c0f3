package models

import "time"

// LinkResponse is returned by the link generation API.
type LinkResponse struct {
	Link         string     `json:"link"`
	QRCodeURL    string     `json:"qr_code_url"`
	PhoneDisplay string     `json:"phone_display"`
	Share        ShareLinks `json:"share"`
	Hint         PhoneHint  `json:"hint"`
}

// FormatResponse is returned by the format API.
type FormatResponse struct {
	Country   string `json:"country"`
	Formatted string `json:"formatted"`
	Digits    string `json:"digits"`
	MaxDigits int    `json:"max_digits"`
	Accepted  bool   `json:"accepted"`
}

// RestoreResponse is returned when a history item is restored.
type RestoreResponse struct {
	Item           HistoryItem `json:"item"`
	Country        string      `json:"country"`
	CountryMatched bool        `json:"country_matched"`
	LocalNumber    string      `json:"local_number"`
	QRCodeURL      string      `json:"qr_code_url"`
}

// UpstreamStatusResponse contains the last probe result for an external service.
type UpstreamStatusResponse struct {
	Service   string     `json:"service"`
	Up        bool       `json:"up"`
	CheckedAt *time.Time `json:"checked_at"`
	Error     string     `json:"error,omitempty"`
}

// PhoneHint is an informational plausibility check of a full number.
type PhoneHint struct {
	E164   string `json:"e164,omitempty"`
	Region string `json:"region,omitempty"`
	Valid  bool   `json:"valid"`
}

// LinkRequest is the body of the link generation API.
type LinkRequest struct {
	Country string `json:"country" validate:"required,len=2,alpha"`
	Phone   string `json:"phone" validate:"required,max=64"`
	Message string `json:"message" validate:"max=4096"`
}

// FormatRequest is the body of the format API.
type FormatRequest struct {
	Country string `json:"country" validate:"required,len=2,alpha"`
	Phone   string `json:"phone" validate:"max=64"`
	Current string `json:"current" validate:"max=64"`
}

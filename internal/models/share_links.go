package models

// ShareLinks holds the outbound share URLs for a generated link.
type ShareLinks struct {
	WhatsApp string `json:"whatsapp"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	Email    string `json:"email"`
}

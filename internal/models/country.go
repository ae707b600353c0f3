package models

import "strings"

// Country is one entry of the static country list.
type Country struct {
	Code     string `json:"code" yaml:"code" validate:"len=2,uppercase,alpha"`                    // ISO 3166-1 alpha-2, e.g. "US"
	Name     string `json:"name" yaml:"name" validate:"required"`                                 // Display name
	DialCode string `json:"dial_code" yaml:"dial_code" validate:"required,startswith=+,dialcode"` // Calling code with leading "+", e.g. "+1"
	Mask     string `json:"mask" yaml:"mask" validate:"omitempty,mask"`                           // "#" is a digit slot, empty means no mask
}

// HasMask reports whether the country formats numbers with a mask.
func (c Country) HasMask() bool {
	return c.Mask != ""
}

// DialDigits returns the dial code without its leading "+".
func (c Country) DialDigits() string {
	return strings.TrimPrefix(c.DialCode, "+")
}

// LowerCode returns the country code in lower case, as flag services expect.
func (c Country) LowerCode() string {
	return strings.ToLower(c.Code)
}

// Package phone applies per-country digit masks to phone number input.
package phone

import "strings"

// DefaultMaxDigits bounds input when a country has no mask.
const DefaultMaxDigits = 15

// Strip removes every character that is not an ASCII digit.
func Strip(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Format strips raw and lays the digits over mask. A '#' in the mask takes the
// next digit, any other character is copied as-is. Output stops as soon as the
// digits run out, so partial numbers are never padded. With an empty mask the
// stripped digits are returned unchanged.
func Format(raw, mask string) string {
	digits := Strip(raw)
	if mask == "" {
		return digits
	}

	var b strings.Builder
	b.Grow(len(mask))
	next := 0
	for i := 0; i < len(mask) && next < len(digits); i++ {
		if mask[i] == '#' {
			b.WriteByte(digits[next])
			next++
			continue
		}
		b.WriteByte(mask[i])
	}
	return b.String()
}

// MaxDigits returns the number of digit slots in mask, or DefaultMaxDigits when
// there is no mask.
func MaxDigits(mask string) int {
	if mask == "" {
		return DefaultMaxDigits
	}
	return strings.Count(mask, "#")
}

// Accept applies one input change to the current display value.
// Clearing the field is always accepted. Input carrying more digits than the
// mask allows is ignored: current is returned with ok false.
func Accept(current, input, mask string) (string, bool) {
	if input == "" {
		return "", true
	}
	if len(Strip(input)) > MaxDigits(mask) {
		return current, false
	}
	return Format(input, mask), true
}

// Reformat re-applies mask to the digits already present in display, for when
// the active country changes.
func Reformat(display, mask string) string {
	digits := Strip(display)
	if digits == "" {
		return display
	}
	return Format(digits, mask)
}

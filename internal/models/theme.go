package models

// Theme is the stored color scheme preference.
type Theme string

// Theme constants
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for a stored value. ok is false for anything
// other than the two literal values.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return "", false
	}
}

// IsDark returns true for the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return ThemeLight
	}
	return ThemeDark
}

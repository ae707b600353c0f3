// Package history keeps the per-device list of recently generated links.
package history

import (
	"strconv"
	"strings"
	"time"

	"walink/internal/countries"
	"walink/internal/models"
	"walink/internal/phone"
)

// MaxItems is the number of entries kept, newest first.
const MaxItems = 10

// NewItem creates a history entry stamped with now. The id is the epoch
// millisecond timestamp, so it sorts with the entry. Callers adding it to an
// existing list pass the id through UniqueID.
func NewItem(phoneDisplay, message, link string, now time.Time) models.HistoryItem {
	ms := now.UnixMilli()
	return models.HistoryItem{
		ID:          strconv.FormatInt(ms, 10),
		PhoneNumber: phoneDisplay,
		Message:     message,
		Link:        link,
		Timestamp:   ms,
	}
}

// UniqueID returns id, or id with a "-N" suffix when an entry in items already
// uses it. Two links generated within the same millisecond stay restorable.
func UniqueID(items []models.HistoryItem, id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, taken := Find(items, candidate); !taken {
			return candidate
		}
		candidate = id + "-" + strconv.Itoa(n)
	}
}

// PhoneDisplay renders the stored phone string: dial code, a space, then the
// formatted local number.
func PhoneDisplay(dialCode, formattedLocal string) string {
	return dialCode + " " + formattedLocal
}

// Prepend returns a new list with item first, trimmed to MaxItems.
// items is not modified.
func Prepend(items []models.HistoryItem, item models.HistoryItem) []models.HistoryItem {
	n := len(items) + 1
	if n > MaxItems {
		n = MaxItems
	}
	out := make([]models.HistoryItem, 0, n)
	out = append(out, item)
	for _, it := range items {
		if len(out) == n {
			break
		}
		out = append(out, it)
	}
	return out
}

// Find returns the item with id.
func Find(items []models.HistoryItem, id string) (models.HistoryItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return models.HistoryItem{}, false
}

// Restored is the editable state recovered from a history item.
type Restored struct {
	Country     models.Country
	LocalNumber string // Formatted with Country's mask
	Matched     bool   // False when no dial code prefixed the stored number
}

// Restore recovers the country and local number from a stored display string.
// Everything but digits and '+' is dropped, then the first country whose dial
// code is a prefix wins. Countries sharing a dial code cannot be told apart.
func Restore(catalog *countries.Catalog, item models.HistoryItem) Restored {
	clean := keepDialChars(item.PhoneNumber)
	country, ok := catalog.MatchDialPrefix(clean)
	if !ok {
		return Restored{}
	}
	rawLocal := strings.TrimPrefix(clean, country.DialCode)
	return Restored{
		Country:     country,
		LocalNumber: phone.Format(rawLocal, country.Mask),
		Matched:     true,
	}
}

func keepDialChars(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '+' || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

package models

import "time"

// HistoryItem is a previously generated link together with its inputs.
// JSON field names match the stored history format.
type HistoryItem struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"` // Dial code + " " + formatted local number
	Message     string `json:"message"`
	Link        string `json:"link"`
	Timestamp   int64  `json:"timestamp"` // Epoch milliseconds
}

// CreatedAt returns the item timestamp as a time.Time.
func (h HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}

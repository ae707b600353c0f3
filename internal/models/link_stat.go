package models

import "time"

// Generation outcome constants
const (
	OutcomeGenerated = "generated"
	OutcomeRejected  = "rejected"
	OutcomeRestored  = "restored"
)

// LinkStat is an anonymous per-country count of generation outcomes.
type LinkStat struct {
	CountryCode string
	Outcome     string
	Count       int64
	LastSeenAt  time.Time
}

package db

import (
	"context"

	"walink/internal/models"
)

// IncrementLinkStat upserts the count for a country and outcome.
func (d *DB) IncrementLinkStat(ctx context.Context, countryCode, outcome string) error {
	switch outcome {
	case models.OutcomeGenerated, models.OutcomeRejected, models.OutcomeRestored:
	default:
		return ErrInvalidOutcome
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO link_stats (country_code, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (country_code, outcome) DO UPDATE
		SET count = link_stats.count + 1, last_seen_at = NOW()
	`, countryCode, outcome)
	return err
}

// GetAllLinkStats returns every stats row for metrics export.
func (d *DB) GetAllLinkStats(ctx context.Context) ([]models.LinkStat, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT country_code, outcome, count, last_seen_at
		FROM link_stats
		ORDER BY country_code, outcome
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.LinkStat
	for rows.Next() {
		var s models.LinkStat
		if err := rows.Scan(&s.CountryCode, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"walink/internal/models"
)

// Storage keys. Each device gets its own pair of entries.
const (
	HistoryKey = "wa_link_gen_history"
	ThemeKey   = "wa_link_gen_theme"
)

// Storage is the subset of fiber.Storage the store needs.
type Storage interface {
	GetWithContext(ctx context.Context, key string) ([]byte, error)
	SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error
	DeleteWithContext(ctx context.Context, key string) error
}

// Store persists history and theme for each device.
type Store struct {
	storage Storage
	log     *slog.Logger
}

// NewStore creates a store on top of a key/value storage.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, log: logger}
}

func historyKey(device string) string { return HistoryKey + ":" + device }
func themeKey(device string) string   { return ThemeKey + ":" + device }

// LoadHistory returns the stored list for device. Read and parse failures are
// logged and yield an empty list.
func (s *Store) LoadHistory(ctx context.Context, device string) []models.HistoryItem {
	data, err := s.storage.GetWithContext(ctx, historyKey(device))
	if err != nil {
		s.log.Error("failed to read history", "device", device, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var items []models.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error("failed to parse history", "device", device, "error", err)
		return nil
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}

// SaveHistory replaces the stored list for device.
func (s *Store) SaveHistory(ctx context.Context, device string, items []models.HistoryItem) error {
	if items == nil {
		items = []models.HistoryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.storage.SetWithContext(ctx, historyKey(device), data, 0); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// ClearHistory removes the stored list for device.
func (s *Store) ClearHistory(ctx context.Context, device string) error {
	if err := s.storage.DeleteWithContext(ctx, historyKey(device)); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// LoadTheme returns the stored theme for device. ok is false when nothing
// valid is stored.
func (s *Store) LoadTheme(ctx context.Context, device string) (models.Theme, bool) {
	data, err := s.storage.GetWithContext(ctx, themeKey(device))
	if err != nil {
		s.log.Error("failed to read theme", "device", device, "error", err)
		return "", false
	}
	return models.ParseTheme(string(data))
}

// SaveTheme stores the theme for device.
func (s *Store) SaveTheme(ctx context.Context, device string, theme models.Theme) error {
	if err := s.storage.SetWithContext(ctx, themeKey(device), []byte(theme), 0); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}
	return nil
}

// Package preferences persists the light/dark display preference.
package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

type Store struct {
	storage    storage.Storage
	key        string
	preferDark bool
	log        logging.Logger

	mu    sync.RWMutex
	theme models.Theme
}

// NewStore builds a preference store. preferDark is the system preference
// used when nothing valid is persisted.
func NewStore(st storage.Storage, key string, preferDark bool, log logging.Logger) *Store {
	return &Store{
		storage:    st,
		key:        key,
		preferDark: preferDark,
		log:        log.With("component", "preferences"),
		theme:      fallback(preferDark),
	}
}

// Init restores the persisted theme, falling back to the system preference
// for a missing or unknown value. The resolved theme is written back.
func (s *Store) Init(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read theme: %w", err)
	}

	theme := models.Theme(raw)
	if !theme.Valid() {
		if len(raw) > 0 {
			s.log.Warn(ctx, "ignoring unknown theme", "value", string(raw))
		}
		theme = fallback(s.preferDark)
	}
	return s.Set(ctx, theme)
}

func (s *Store) Theme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) IsDark() bool { return s.Theme() == models.ThemeDark }

func (s *Store) Set(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, s.key, []byte(theme)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	s.theme = theme
	return nil
}

// Toggle flips between dark and light and returns the new theme.
func (s *Store) Toggle(ctx context.Context) (models.Theme, error) {
	next := models.ThemeDark
	if s.IsDark() {
		next = models.ThemeLight
	}
	if err := s.Set(ctx, next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}

func fallback(preferDark bool) models.Theme {
	if preferDark {
		return models.ThemeDark
	}
	return models.ThemeLight
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
)

// EventPreferenceChanged is published after a user changes their preferred
// display currency.
const EventPreferenceChanged = "fx.preference.changed"

// PreferenceService manages each user's preferred display currency and
// broadcasts changes on the in-process broker so every active consumer
// observes the new preference without a manual refetch.
type PreferenceService struct {
	catalog *domain.Catalog
	store   ports.PreferenceStore
	broker  ports.Broker
	events  ports.EventPublisher
	logger  *slog.Logger
}

// NewPreferenceService creates a PreferenceService. events may be nil.
func NewPreferenceService(
	catalog *domain.Catalog,
	store ports.PreferenceStore,
	broker ports.Broker,
	events ports.EventPublisher,
	logger *slog.Logger,
) *PreferenceService {
	return &PreferenceService{
		catalog: catalog,
		store:   store,
		broker:  broker,
		events:  events,
		logger:  logger,
	}
}

// GetPreferredCurrency returns the user's stored preference. An unset
// preference, a storage failure or a code that is no longer in the catalog
// all degrade to the home currency; reads never fail.
func (s *PreferenceService) GetPreferredCurrency(ctx context.Context, userID string) string {
	code, err := s.store.GetPreferredCurrency(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("failed to read currency preference, defaulting to home currency",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		return s.catalog.HomeCode()
	}
	if !s.catalog.Has(code) {
		return s.catalog.HomeCode()
	}
	return code
}

// SetPreferredCurrency validates code against the catalog, persists it and
// broadcasts the change.
func (s *PreferenceService) SetPreferredCurrency(ctx context.Context, userID, code string) error {
	if !s.catalog.Has(code) {
		return fmt.Errorf("%w: unsupported currency code %q", apperrors.ErrValidation, code)
	}
	if err := s.store.SetPreferredCurrency(ctx, userID, code); err != nil {
		return fmt.Errorf("failed to persist currency preference: %w", err)
	}

	s.broker.Publish(domain.CurrencyChange{UserID: userID, Code: code})
	if s.events != nil {
		s.events.Publish(EventPreferenceChanged, userID, domain.CurrencyChange{UserID: userID, Code: code})
	}
	return nil
}

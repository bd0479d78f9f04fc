package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/umputun/tg-relay/pkg/domain"
)

// settingsKey is the fixed blob key of the settings document
const settingsKey = "config.json"

// SettingsRepository stores the single settings document as a JSON blob.
// There is no merge on concurrent writes, last write wins; the store is
// the sole source of truth between readers.
type SettingsRepository struct {
	blob        *BlobRepository
	superAdmins []string
}

// NewSettingsRepository creates a settings repository. superAdmins seed
// the admin list of the lazily created default document.
func NewSettingsRepository(blob *BlobRepository, superAdmins []string) *SettingsRepository {
	return &SettingsRepository{blob: blob, superAdmins: superAdmins}
}

// Get loads the settings document, returning a default one if none was
// ever stored. The default is not persisted until the first mutation.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	data, err := r.blob.Get(ctx, settingsKey)
	if errors.Is(err, ErrNotFound) {
		return domain.NewSettings(r.superAdmins), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var s domain.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	// lists may be null in hand-edited documents
	if s.KeywordInitial == nil {
		s.KeywordInitial = []string{}
	}
	if s.KeywordContain == nil {
		s.KeywordContain = []string{}
	}
	if s.SendingChannels == nil {
		s.SendingChannels = []string{}
	}
	if s.Admins == nil {
		s.Admins = append([]string{}, r.superAdmins...)
	}

	return &s, nil
}

// Put persists the settings document. Cardinality limits are checked here
// as the last line of defence, handlers validate before calling.
func (r *SettingsRepository) Put(ctx context.Context, s *domain.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := r.blob.Put(ctx, settingsKey, data); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	return nil
}

package service

import (
	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/store"
)

// SettingsService handles the store profile record
type SettingsService struct {
	store *store.Store
}

// NewSettingsService creates a new settings service
func NewSettingsService(st *store.Store) *SettingsService {
	return &SettingsService{store: st}
}

// GetSettings returns the current store profile
func (s *SettingsService) GetSettings() entity.Settings {
	return s.store.Settings()
}

// UpdateSettingsInput is a partial settings update; nil fields are left
// unchanged.
type UpdateSettingsInput struct {
	StoreName   *string
	Address     *string
	Phone       *string
	ReceiptNote *string
}

// UpdateSettings merges the provided fields into the profile
func (s *SettingsService) UpdateSettings(input *UpdateSettingsInput) entity.Settings {
	settings := s.store.Settings()
	if input.StoreName != nil {
		settings.StoreName = *input.StoreName
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.ReceiptNote != nil {
		settings.ReceiptNote = *input.ReceiptNote
	}
	s.store.SetSettings(settings)
	return s.store.Settings()
}

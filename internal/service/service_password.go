package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
)

type passwordService struct {
	passwordRepository store.PasswordRepository
	cipher             crypto.Cipher
	ids                *utils.UUIDGenerator

	now func() time.Time

	logger *logger.Logger
}

// NewPasswordService returns a PasswordService that seals entries with
// cipher before handing them to the repository.
func NewPasswordService(passwordRepository store.PasswordRepository, cipher crypto.Cipher, logger *logger.Logger) PasswordService {
	return &passwordService{
		passwordRepository: passwordRepository,
		cipher:             cipher,
		ids:                utils.NewUUIDGenerator(),
		now:                time.Now,
		logger:             logger,
	}
}

// GetPasswords returns the user's entries with every secret field opened.
// A single entry that cannot be opened fails the whole call with
// ErrUnableToRetrieveEntry.
func (p *passwordService) GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := p.passwordRepository.GetPasswords(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "passwordService.GetPasswords").Msg("error getting passwords")
		return nil, fmt.Errorf("error getting passwords: %w", err)
	}

	for i := range entries {
		for _, field := range entries[i].SecretFields() {
			opened, err := p.cipher.Open(*field)
			if err != nil {
				log.Err(err).
					Str("func", "passwordService.GetPasswords").
					Str("password_id", entries[i].ID).
					Msg("stored entry could not be opened")
				return nil, ErrUnableToRetrieveEntry
			}
			*field = opened
		}
	}

	return entries, nil
}

// AddPassword seals every field, including an empty URL or note, and stores
// the entry under a fresh UUIDv7. The sealed entry is returned.
func (p *passwordService) AddPassword(ctx context.Context, userID string, req models.AddPasswordRequest) (models.PasswordEntry, error) {
	log := logger.FromContext(ctx)

	if userID == "" || req.Title == "" || req.Username == "" || req.Password == "" {
		return models.PasswordEntry{}, ErrInvalidDataProvided
	}

	now := p.now().UTC()
	entry := models.PasswordEntry{
		ID:        p.ids.Generate(),
		UserID:    userID,
		Title:     req.Title,
		Username:  req.Username,
		Password:  req.Password,
		URL:       req.URL,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, field := range entry.SecretFields() {
		sealed, err := p.cipher.Seal(*field)
		if err != nil {
			log.Err(err).Str("func", "passwordService.AddPassword").Msg("sealing failed")
			return models.PasswordEntry{}, fmt.Errorf("%w: %w", ErrSealingFailed, err)
		}
		*field = sealed
	}

	if err := p.passwordRepository.SavePassword(ctx, entry); err != nil {
		log.Err(err).Str("func", "passwordService.AddPassword").Msg("error saving password")
		return models.PasswordEntry{}, fmt.Errorf("error saving password: %w", err)
	}

	return entry, nil
}

// UpdatePassword seals each supplied field and writes only those.
func (p *passwordService) UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error {
	log := logger.FromContext(ctx)

	if userID == "" || id == "" {
		return ErrInvalidDataProvided
	}
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	sealed, err := p.sealUpdate(update)
	if err != nil {
		log.Err(err).Str("func", "passwordService.UpdatePassword").Msg("sealing failed")
		return err
	}

	if err = p.passwordRepository.UpdatePassword(ctx, userID, id, sealed); err != nil {
		log.Err(err).Str("func", "passwordService.UpdatePassword").Str("password_id", id).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

func (p *passwordService) sealUpdate(update models.PasswordUpdate) (models.PasswordUpdate, error) {
	var sealed models.PasswordUpdate
	for _, pair := range []struct{ src, dst **string }{
		{&update.Title, &sealed.Title},
		{&update.Username, &sealed.Username},
		{&update.Password, &sealed.Password},
		{&update.URL, &sealed.URL},
		{&update.Note, &sealed.Note},
	} {
		if *pair.src == nil {
			continue
		}
		value, err := p.cipher.Seal(**pair.src)
		if err != nil {
			return models.PasswordUpdate{}, fmt.Errorf("%w: %w", ErrSealingFailed, err)
		}
		*pair.dst = &value
	}

	return sealed, nil
}

func (p *passwordService) DeletePassword(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidDataProvided
	}

	if err := p.passwordRepository.DeletePassword(ctx, userID, id); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "passwordService.DeletePassword").
			Str("password_id", id).
			Msg("error deleting password")
		return fmt.Errorf("error deleting password: %w", err)
	}

	return nil
}

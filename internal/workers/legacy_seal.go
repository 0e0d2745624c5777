// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/rs/zerolog"
)

const defaultLegacySealBatchSize = 100

// LegacySealWorker seals credential fields that were stored as plaintext
// before encryption existed. Already sealed fields are left untouched.
type LegacySealWorker struct {
	passwords store.PasswordRepository
	cipher    crypto.Cipher

	interval  time.Duration
	batchSize int

	logger *logger.Logger
}

func NewLegacySealWorker(passwords store.PasswordRepository, cipher crypto.Cipher, cfg config.Workers, logger *logger.Logger) *LegacySealWorker {
	batchSize := cfg.LegacySealBatchSize
	if batchSize <= 0 {
		batchSize = defaultLegacySealBatchSize
	}

	child := logger.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "legacy-seal")
	})

	return &LegacySealWorker{
		passwords: passwords,
		cipher:    cipher,
		interval:  cfg.LegacySealInterval,
		batchSize: batchSize,
		logger:    child,
	}
}

// Run performs one pass immediately and then one per interval.
func (w *LegacySealWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Msg("legacy seal worker has no interval, not starting")
		return
	}
	w.logger.Info().Dur("interval", w.interval).Int("batch_size", w.batchSize).Msg("legacy seal worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		sealed, err := w.SealPass(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("legacy seal pass aborted")
		} else if sealed > 0 {
			w.logger.Info().Int("sealed_entries", sealed).Msg("legacy seal pass finished")
		}

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("legacy seal worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// SealPass walks every stored entry once and returns how many entries were
// rewritten. Writes only apply to entries still holding the values that were
// listed, so an edit made during the pass is never overwritten. Per-entry
// failures are logged and skipped; only a failure to list a page ends the
// pass early.
func (w *LegacySealWorker) SealPass(ctx context.Context) (int, error) {
	var (
		afterID string
		sealed  int
	)

	for {
		if err := ctx.Err(); err != nil {
			return sealed, err
		}

		page, err := w.passwords.ListPasswordsAfter(ctx, afterID, w.batchSize)
		if err != nil {
			return sealed, err
		}

		for _, entry := range page {
			update, err := w.sealLegacyFields(entry)
			if err != nil {
				w.logger.Error().Err(err).Str("password_id", entry.ID).Msg("sealing legacy fields failed")
				continue
			}
			if update.IsEmpty() {
				continue
			}

			err = w.passwords.ResealPassword(ctx, entry, update)
			if errors.Is(err, store.ErrPasswordChanged) {
				w.logger.Debug().Str("password_id", entry.ID).Msg("entry changed since listing, left for the next pass")
				continue
			}
			if err != nil {
				w.logger.Error().Err(err).Str("password_id", entry.ID).Msg("writing sealed fields failed")
				continue
			}
			sealed++
		}

		if len(page) < w.batchSize {
			return sealed, nil
		}
		afterID = page[len(page)-1].ID
	}
}

// sealLegacyFields returns an update carrying only the fields that are not
// yet envelopes.
func (w *LegacySealWorker) sealLegacyFields(entry models.PasswordEntry) (models.PasswordUpdate, error) {
	var update models.PasswordUpdate

	fields := []struct {
		value  string
		target **string
	}{
		{entry.Title, &update.Title},
		{entry.Username, &update.Username},
		{entry.Password, &update.Password},
		{entry.URL, &update.URL},
		{entry.Note, &update.Note},
	}

	for _, f := range fields {
		if crypto.IsSealed(f.value) {
			continue
		}
		sealed, err := w.cipher.Seal(f.value)
		if err != nil {
			return models.PasswordUpdate{}, err
		}
		*f.target = &sealed
	}

	return update, nil
}

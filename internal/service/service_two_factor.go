// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPIssuer is the issuer shown by authenticator apps.
const TOTPIssuer = "EaglePasswords"

var totpValidateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type twoFactorService struct {
	userRepository store.UserRepository
	cipher         crypto.Cipher

	now func() time.Time

	logger *logger.Logger
}

// NewTwoFactorService returns a TwoFactorService that keeps TOTP seeds sealed
// with cipher.
func NewTwoFactorService(userRepository store.UserRepository, cipher crypto.Cipher, logger *logger.Logger) TwoFactorService {
	return &twoFactorService{
		userRepository: userRepository,
		cipher:         cipher,
		now:            time.Now,
		logger:         logger,
	}
}

// Enable replaces any previous secret. The returned otpauth:// URL is the
// only place the plaintext seed leaves the server.
func (s *twoFactorService) Enable(ctx context.Context, userID string) (string, error) {
	log := logger.FromContext(ctx)

	if err := ensureOwner(ctx, userID); err != nil {
		return "", err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "twoFactorService.Enable").Msg("user search by id failed")
		return "", fmt.Errorf("user search by id failed: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      TOTPIssuer,
		AccountName: user.Username,
	})
	if err != nil {
		log.Err(err).Str("func", "twoFactorService.Enable").Msg("totp secret generation failed")
		return "", fmt.Errorf("totp secret generation failed: %w", err)
	}

	sealed, err := s.cipher.Seal(key.Secret())
	if err != nil {
		log.Err(err).Str("func", "twoFactorService.Enable").Msg("sealing failed")
		return "", fmt.Errorf("%w: %w", ErrSealingFailed, err)
	}

	if err = s.userRepository.UpdateTwoFactor(ctx, userID, true, sealed); err != nil {
		log.Err(err).Str("func", "twoFactorService.Enable").Msg("error storing totp secret")
		return "", fmt.Errorf("error storing totp secret: %w", err)
	}

	return key.URL(), nil
}

// Verify checks code against the stored seed. Seeds written before sealing
// was introduced are opened through the cipher's plaintext fallback.
func (s *twoFactorService) Verify(ctx context.Context, userID, code string) error {
	log := logger.FromContext(ctx)

	if err := ensureOwner(ctx, userID); err != nil {
		return err
	}
	if code == "" {
		return ErrInvalidDataProvided
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrTwoFactorNotEnabled
	}
	if err != nil {
		log.Err(err).Str("func", "twoFactorService.Verify").Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == "" {
		return ErrTwoFactorNotEnabled
	}

	secret, err := s.cipher.Open(user.TwoFactorSecret)
	if err != nil {
		log.Err(err).Str("func", "twoFactorService.Verify").Msg("stored totp secret could not be opened")
		return ErrUnableToRetrieveEntry
	}

	ok, err := totp.ValidateCustom(code, secret, s.now().UTC(), totpValidateOpts)
	if err != nil || !ok {
		return ErrInvalidTwoFactorCode
	}

	return nil
}

// Disable clears both the flag and the stored secret.
func (s *twoFactorService) Disable(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if err := ensureOwner(ctx, userID); err != nil {
		return err
	}

	if _, err := s.userRepository.FindUserByID(ctx, userID); err != nil {
		log.Err(err).Str("func", "twoFactorService.Disable").Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if err := s.userRepository.UpdateTwoFactor(ctx, userID, false, ""); err != nil {
		log.Err(err).Str("func", "twoFactorService.Disable").Msg("error clearing totp secret")
		return fmt.Errorf("error clearing totp secret: %w", err)
	}

	return nil
}

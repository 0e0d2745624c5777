// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/eagle-pass/models"
)

// UserRepository persists Discord-authenticated accounts.
type UserRepository interface {
	// CreateUser stores a new user. A duplicate id or username yields
	// [ErrUserAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when the id is unknown.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindUserByUsername returns [ErrNoUserWasFound] when the username is unknown.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
	// UpdateTwoFactor sets the 2FA flag and the sealed TOTP secret.
	UpdateTwoFactor(ctx context.Context, id string, enabled bool, sealedSecret string) error
	// DeleteUser removes the user together with every stored password.
	DeleteUser(ctx context.Context, id string) error
}

// PasswordRepository persists sealed password entries. It never sees
// plaintext: every secret field arrives as an envelope.
type PasswordRepository interface {
	SavePassword(ctx context.Context, entry models.PasswordEntry) error
	// GetPasswords returns the owner's entries ordered by creation time.
	GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error)
	// UpdatePassword writes the set fields and bumps updated_at.
	// Returns [ErrPasswordNotFound] if no entry matches both ids.
	UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error
	// ResealPassword writes the set fields of update only while each of
	// them still holds its value in current, and leaves updated_at alone.
	// Returns [ErrPasswordChanged] when nothing matched.
	ResealPassword(ctx context.Context, current models.PasswordEntry, update models.PasswordUpdate) error
	// DeletePassword returns [ErrPasswordNotFound] if no entry matches both ids.
	DeletePassword(ctx context.Context, userID, id string) error
	// ListPasswordsAfter pages through every user's entries ordered by id,
	// starting after afterID ("" for the first page).
	ListPasswordsAfter(ctx context.Context, afterID string, limit int) ([]models.PasswordEntry, error)
}

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer releases backend connections.
type Closer interface {
	Close(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

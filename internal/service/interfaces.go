// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/eagle-pass/models"
)

// AuthService drives the Discord OAuth login and the JWT lifecycle.
type AuthService interface {
	// LoginURL returns the provider page the browser is redirected to.
	LoginURL() string
	// HandleCallback exchanges the authorization code, upserts the user and
	// issues a token for them.
	HandleCallback(ctx context.Context, code string) (models.Token, error)
	// ClientRedirectURL returns the frontend URL that receives the token.
	ClientRedirectURL(token models.Token) string
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PasswordService manages a user's credentials. Every secret field is sealed
// before it reaches storage and opened before it is returned.
type PasswordService interface {
	GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error)
	AddPassword(ctx context.Context, userID string, req models.AddPasswordRequest) (models.PasswordEntry, error)
	UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error
	DeletePassword(ctx context.Context, userID, id string) error
}

// UserService exposes account lookups and removal.
type UserService interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TwoFactorService manages TOTP enrolment for a user.
type TwoFactorService interface {
	// Enable generates a fresh secret and returns its otpauth:// URL.
	Enable(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, userID, code string) error
	Disable(ctx context.Context, userID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// StatusService reports whether the storage backend is reachable.
type StatusService interface {
	Check(ctx context.Context) error
}

// PasswordServiceWrapper defines middleware composition for PasswordService.
// Implementations wrap an existing PasswordService to add behavior such as
// validation.
type PasswordServiceWrapper interface {
	Wrap(PasswordService) PasswordService
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external services eagle-pass
// talks to.
//
// The only provider today is Discord: [OAuthProvider] covers the OAuth2
// authorization-code flow used for login. Error values defined in errors.go
// are mapped from HTTP status codes by mapDiscordError so that callers can use
// [errors.Is] without knowing about the transport (e.g. [ErrUnauthorized] for
// 401 or [ErrRateLimited] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/eagle-pass/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// OAuthProvider performs the server side of an OAuth2 authorization-code
// login.
type OAuthProvider interface {
	// AuthorizeURL returns the provider page the browser is redirected to.
	// state is appended when non-empty.
	AuthorizeURL(state string) string

	// ExchangeCode trades the authorization code from the callback for an
	// access token. Returns [ErrEmptyAccessToken] if the provider answers
	// 2xx without a token.
	ExchangeCode(ctx context.Context, code string) (models.DiscordToken, error)

	// GetCurrentUser fetches the profile owning accessToken.
	GetCurrentUser(ctx context.Context, accessToken string) (models.DiscordUser, error)
}

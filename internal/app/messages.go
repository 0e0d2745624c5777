// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the eagle-pass HTTP API
// writes into response bodies.
//
// Keeping them in one place keeps the wording the frontend matches on
// consistent across handlers and middleware.
package app

// Success messages.
const (
	MsgPasswordAdded   = "Password added"
	MsgPasswordUpdated = "Password updated"
	MsgPasswordDeleted = "Password deleted"
	MsgUserDeleted     = "User deleted"

	MsgTwoFactorEnabled  = "2FA enabled"
	MsgTwoFactorVerified = "2FA code verified successfully"
	MsgTwoFactorDisabled = "2FA disabled successfully"
)

// Client errors.
const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidGzipBody is returned when a body marked as gzip cannot be
	// decompressed.
	MsgInvalidGzipBody = "invalid gzip body"

	MsgCodeRequired         = "ID and code are required"
	MsgNoCodeReceived       = "Error: No code received."
	MsgAccessDeniedPrefix   = "Access denied: "
	MsgNoFieldsToUpdate     = "No fields to update"
	MsgInvalidTwoFactorCode = "Invalid 2FA code"
	MsgTooManyRequests      = "Too many requests"
)

// Lookup and upstream failures.
const (
	MsgTwoFactorNotEnabled   = "User not found or 2FA not enabled"
	MsgUserNotFound          = "User not found"
	MsgPasswordNotFound      = "Password not found"
	MsgUserAlreadyExists     = "User already exists"
	MsgPasswordAlreadyExists = "Password already exists"
	MsgOAuthFailed           = "Authentication with Discord failed"
	MsgUnableToRetrieveEntry = "unable to retrieve this entry"
)

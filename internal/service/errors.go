package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrAccessDenied is returned when the user declined the OAuth consent.
	ErrAccessDenied   = errors.New("access denied")
	ErrNoCodeReceived = errors.New("no code received")
	// ErrOAuthFailed wraps any failure talking to the OAuth provider.
	ErrOAuthFailed = errors.New("oauth provider request failed")

	ErrTwoFactorNotEnabled  = errors.New("user not found or 2FA not enabled")
	ErrInvalidTwoFactorCode = errors.New("invalid 2FA code")

	// ErrUnableToRetrieveEntry hides the cause of a failed Open from clients.
	ErrUnableToRetrieveEntry = errors.New("unable to retrieve entry")
	ErrSealingFailed         = errors.New("unable to seal entry")

	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to a different user's data")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrStorageUnavailable    = errors.New("storage is unavailable")
)

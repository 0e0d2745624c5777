package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrFieldTooLong     = errors.New("field is too long")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrInvalidTOTPCode  = errors.New("2FA code must be 6 digits")
)

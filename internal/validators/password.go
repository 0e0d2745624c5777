package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/eagle-pass/models"
)

// Field name constants used for field-level scoping in Validate.
const (
	FieldTitle    = "title"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldURL      = "url"
	FieldNote     = "note"

	// FieldAnyUpdate requires a PasswordUpdate to carry at least one field.
	FieldAnyUpdate = "any_update"

	FieldCode = "code"
)

const (
	maxShortFieldLength = 512
	maxNoteLength       = 8192

	totpCodeLength = 6
)

// PasswordValidator validates credential create and update requests and the
// 2FA verification payload. Both value and pointer forms are accepted.
type PasswordValidator struct{}

func NewPasswordValidator() Validator {
	return &PasswordValidator{}
}

// Validate dispatches on the dynamic type of obj. Unsupported types yield
// [ErrUnsupportedType].
func (v *PasswordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AddPasswordRequest:
		return v.validateAddRequest(value, fields...)
	case *models.AddPasswordRequest:
		return v.validateAddRequest(*value, fields...)

	case models.PasswordUpdate:
		return v.validateUpdate(value, fields...)
	case *models.PasswordUpdate:
		return v.validateUpdate(*value, fields...)

	case models.VerifyTwoFactorRequest:
		return v.validateVerifyRequest(value, fields...)
	case *models.VerifyTwoFactorRequest:
		return v.validateVerifyRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateAddRequest requires title, username and password. URL and note
// may be empty but are length-limited like the rest.
func (v *PasswordValidator) validateAddRequest(req models.AddPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldUsername, FieldPassword, FieldURL, FieldNote}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := required(req.Title, ErrEmptyTitle, maxShortFieldLength); err != nil {
				return err
			}
		case FieldUsername:
			if err := required(req.Username, ErrEmptyUsername, maxShortFieldLength); err != nil {
				return err
			}
		case FieldPassword:
			if err := required(req.Password, ErrEmptyPassword, maxShortFieldLength); err != nil {
				return err
			}
		case FieldURL:
			if err := maxLength(req.URL, maxShortFieldLength); err != nil {
				return err
			}
		case FieldNote:
			if err := maxLength(req.Note, maxNoteLength); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpdate checks only the fields that are set; nil means "keep".
// A set title, username or password must not be blank.
func (v *PasswordValidator) validateUpdate(upd models.PasswordUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAnyUpdate, FieldTitle, FieldUsername, FieldPassword, FieldURL, FieldNote}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAnyUpdate:
			if upd.IsEmpty() {
				err = ErrNoFieldsToUpdate
			}
		case FieldTitle:
			if upd.Title != nil {
				err = required(*upd.Title, ErrEmptyTitle, maxShortFieldLength)
			}
		case FieldUsername:
			if upd.Username != nil {
				err = required(*upd.Username, ErrEmptyUsername, maxShortFieldLength)
			}
		case FieldPassword:
			if upd.Password != nil {
				err = required(*upd.Password, ErrEmptyPassword, maxShortFieldLength)
			}
		case FieldURL:
			if upd.URL != nil {
				err = maxLength(*upd.URL, maxShortFieldLength)
			}
		case FieldNote:
			if upd.Note != nil {
				err = maxLength(*upd.Note, maxNoteLength)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *PasswordValidator) validateVerifyRequest(req models.VerifyTwoFactorRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCode}
	}

	for _, f := range fields {
		switch f {
		case FieldCode:
			if !isTOTPCode(req.Code) {
				return ErrInvalidTOTPCode
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func required(value string, emptyErr error, limit int) error {
	if strings.TrimSpace(value) == "" {
		return emptyErr
	}
	return maxLength(value, limit)
}

// maxLength counts runes, not bytes.
func maxLength(value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return ErrFieldTooLong
	}
	return nil
}

func isTOTPCode(code string) bool {
	if len(code) != totpCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

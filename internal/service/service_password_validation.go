package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eagle-pass/internal/validators"
	"github.com/MKhiriev/eagle-pass/models"
)

// PasswordValidationService validates request payloads before delegating to
// the wrapped PasswordService.
type PasswordValidationService struct {
	inner     PasswordService
	validator validators.Validator
}

func NewPasswordValidationService(validator validators.Validator) PasswordServiceWrapper {
	return &PasswordValidationService{
		validator: validator,
	}
}

func (v *PasswordValidationService) GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error) {
	return v.inner.GetPasswords(ctx, userID)
}

func (v *PasswordValidationService) AddPassword(ctx context.Context, userID string, req models.AddPasswordRequest) (models.PasswordEntry, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PasswordEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.AddPassword(ctx, userID, req)
}

func (v *PasswordValidationService) UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error {
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdatePassword(ctx, userID, id, update)
}

func (v *PasswordValidationService) DeletePassword(ctx context.Context, userID, id string) error {
	return v.inner.DeletePassword(ctx, userID, id)
}

func (v *PasswordValidationService) Wrap(wrapped PasswordService) PasswordService {
	v.inner = wrapped
	return v
}

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
)

type userService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (u *userService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if err := ensureOwner(ctx, id); err != nil {
		return models.User{}, err
	}

	user, err := u.userRepository.FindUserByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.GetUserByID").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// GetUserByUsername resolves the username first and then applies the same
// ownership rule as GetUserByID.
func (u *userService) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	if username == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.GetUserByUsername").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err = ensureOwner(ctx, user.ID); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser removes the account and all of its passwords.
func (u *userService) DeleteUser(ctx context.Context, id string) error {
	if err := ensureOwner(ctx, id); err != nil {
		return err
	}

	if err := u.userRepository.DeleteUser(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.DeleteUser").Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}

// ensureOwner compares id with the authenticated user stored in ctx.
func ensureOwner(ctx context.Context, id string) error {
	subject, ok := utils.GetUserIDFromContext(ctx)
	if !ok || id == "" || subject != id {
		logger.FromContext(ctx).Warn().
			Str("subject", subject).
			Str("requested_id", id).
			Msg("access to a different user's data rejected")
		return ErrUnauthorizedAccessToDifferentUserData
	}

	return nil
}

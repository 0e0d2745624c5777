package service

import (
	"fmt"

	"github.com/MKhiriev/eagle-pass/internal/adapter"
	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/validators"
)

type Services struct {
	AuthService      AuthService
	PasswordService  PasswordService
	UserService      UserService
	TwoFactorService TwoFactorService
	AppInfoService   AppInfoService
	StatusService    StatusService
}

// NewServices wires every service to the given storages, cipher and OAuth
// provider. The password service is wrapped with request validation.
func NewServices(storages *store.Storages, cipher crypto.Cipher, oauth adapter.OAuthProvider, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	passwordService := NewPasswordValidationService(validators.NewPasswordValidator()).
		Wrap(NewPasswordService(storages.PasswordRepository, cipher, logger))

	return &Services{
		AuthService:      NewAuthService(oauth, storages.UserRepository, cfg, logger),
		PasswordService:  passwordService,
		UserService:      NewUserService(storages.UserRepository, logger),
		TwoFactorService: NewTwoFactorService(storages.UserRepository, cipher, logger),
		AppInfoService:   appInfoService,
		StatusService:    NewStatusService(storages.Pinger, logger),
	}, nil
}

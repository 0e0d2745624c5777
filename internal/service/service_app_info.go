package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
)

type appInfoService struct {
	version string

	logger *logger.Logger
}

// NewAppInfoService returns ErrVersionIsNotSpecified when cfg.Version is
// blank.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		version: version,
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
)

type statusService struct {
	pinger store.Pinger

	logger *logger.Logger
}

func NewStatusService(pinger store.Pinger, logger *logger.Logger) StatusService {
	return &statusService{
		pinger: pinger,
		logger: logger,
	}
}

func (s *statusService) Check(ctx context.Context) error {
	if err := s.pinger.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "statusService.Check").Msg("storage ping failed")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}

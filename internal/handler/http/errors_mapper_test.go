package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: service.ErrInvalidDataProvided, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrEmptyTitle), want: http.StatusBadRequest},
		{err: validators.ErrNoFieldsToUpdate, want: http.StatusBadRequest},
		{err: service.ErrTokenIsExpiredOrInvalid, want: http.StatusUnauthorized},
		{err: service.ErrUnauthorizedAccessToDifferentUserData, want: http.StatusForbidden},
		{err: fmt.Errorf("wrapped: %w", store.ErrNoUserWasFound), want: http.StatusNotFound},
		{err: store.ErrPasswordNotFound, want: http.StatusNotFound},
		{err: service.ErrTwoFactorNotEnabled, want: http.StatusNotFound},
		{err: store.ErrUserAlreadyExists, want: http.StatusConflict},
		{err: service.ErrOAuthFailed, want: http.StatusBadGateway},
		{err: service.ErrStorageUnavailable, want: http.StatusServiceUnavailable},
		{err: service.ErrUnableToRetrieveEntry, want: http.StatusInternalServerError},
		{err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{err: errors.New("anything else"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestLookupError_HidesInternals(t *testing.T) {
	_, msg := lookupError(fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("pq: relation does not exist")))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), msg)

	_, msg = lookupError(fmt.Errorf("%w: %w", service.ErrUnableToRetrieveEntry, crypto.ErrDecryption))
	assert.Equal(t, "unable to retrieve this entry", msg)
}

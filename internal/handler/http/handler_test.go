// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/mock"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

type fixture struct {
	auth      *mock.MockAuthService
	passwords *mock.MockPasswordService
	users     *mock.MockUserService
	twoFactor *mock.MockTwoFactorService
	appInfo   *mock.MockAppInfoService
	status    *mock.MockStatusService

	router http.Handler
}

func newFixture(t *testing.T, cfg config.Server) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		auth:      mock.NewMockAuthService(ctrl),
		passwords: mock.NewMockPasswordService(ctrl),
		users:     mock.NewMockUserService(ctrl),
		twoFactor: mock.NewMockTwoFactorService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
		status:    mock.NewMockStatusService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:      f.auth,
		PasswordService:  f.passwords,
		UserService:      f.users,
		TwoFactorService: f.twoFactor,
		AppInfoService:   f.appInfo,
		StatusService:    f.status,
	}, cfg, logger.Nop())
	f.router = h.Init()

	return f
}

// signedIn accepts "Bearer token-<userID>" for the given user.
func (f *fixture) signedIn(userID string) http.Header {
	f.auth.EXPECT().ParseToken(gomock.Any(), "token-"+userID).
		Return(models.Token{UserID: userID}, nil).
		AnyTimes()

	header := http.Header{}
	header.Set("Authorization", "Bearer token-"+userID)
	return header
}

func (f *fixture) do(method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	for key, values := range header {
		req.Header[key] = values
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Message
}

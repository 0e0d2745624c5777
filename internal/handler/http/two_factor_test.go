package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEnableTwoFactor(t *testing.T) {
	f := newFixture(t, config.Server{})
	header := f.signedIn("u1")

	const otpauth = "otpauth://totp/EaglePasswords:nelly?issuer=EaglePasswords&secret=JBSWY3DPEHPK3PXP"
	f.twoFactor.EXPECT().Enable(gomock.Any(), "u1").Return(otpauth, nil)

	rec := f.do(http.MethodPost, "/api/twofactor/enable/u1", "", header)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.EnableTwoFactorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2FA enabled", resp.Message)
	assert.Equal(t, otpauth, resp.OTPAuthURL)
	assert.Contains(t, rec.Body.String(), `"otpauthUrl"`)
}

func TestVerifyTwoFactor(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		callsSvc   bool
		wantStatus int
		wantMsg    string
	}{
		{name: "valid", body: `{"code":"123456"}`, callsSvc: true, wantStatus: http.StatusOK, wantMsg: "2FA code verified successfully"},
		{name: "missing code", body: `{"code":""}`, wantStatus: http.StatusBadRequest, wantMsg: "ID and code are required"},
		{name: "wrong code", body: `{"code":"123456"}`, callsSvc: true, svcErr: service.ErrInvalidTwoFactorCode, wantStatus: http.StatusBadRequest, wantMsg: "Invalid 2FA code"},
		{
			name:       "not enabled",
			body:       `{"code":"123456"}`,
			callsSvc:   true,
			svcErr:     service.ErrTwoFactorNotEnabled,
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found or 2FA not enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.Server{})
			header := f.signedIn("u1")
			if tt.callsSvc {
				f.twoFactor.EXPECT().Verify(gomock.Any(), "u1", "123456").Return(tt.svcErr)
			}

			rec := f.do(http.MethodPost, "/api/twofactor/verify/u1", tt.body, header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, messageOf(t, rec))
		})
	}
}

func TestDisableTwoFactor(t *testing.T) {
	f := newFixture(t, config.Server{})
	header := f.signedIn("u1")

	f.twoFactor.EXPECT().Disable(gomock.Any(), "u1").Return(nil)

	rec := f.do(http.MethodPost, "/api/twofactor/disable/u1", "", header)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2FA disabled successfully", messageOf(t, rec))
}

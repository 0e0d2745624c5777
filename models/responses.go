package models

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// AddPasswordResponse is returned by POST /api/passwords.
// Password carries the stored, sealed entry.
type AddPasswordResponse struct {
	Message  string        `json:"message"`
	Password PasswordEntry `json:"password"`
}

// EnableTwoFactorResponse is returned by POST /api/twofactor/enable/{id}.
type EnableTwoFactorResponse struct {
	Message    string `json:"message"`
	OTPAuthURL string `json:"otpauthUrl"`
}

// VerifyTwoFactorRequest is the body of POST /api/twofactor/verify/{id}.
type VerifyTwoFactorRequest struct {
	Code string `json:"code"`
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	Status string `json:"status"`
}

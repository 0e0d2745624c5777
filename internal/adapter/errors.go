package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited by provider")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("provider internal error")

	ErrEmptyAccessToken = errors.New("provider returned empty access token")
	ErrEmptyProfile     = errors.New("provider returned empty user profile")
)

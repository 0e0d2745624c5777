package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// discordError covers both error shapes Discord returns: OAuth2 endpoints
// use error/error_description, the REST API uses message/code.
type discordError struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description"`
	Message          string   `json:"message"`
	RetryAfter       *float64 `json:"retry_after"`
}

// mapDiscordError turns a non-2xx response into one of the adapter
// sentinels, keeping Discord's own description as detail.
func mapDiscordError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	var body discordError
	raw := strings.TrimSpace(string(resp.Body()))
	_ = json.Unmarshal(resp.Body(), &body)

	detail := raw
	switch {
	case body.ErrorDescription != "" && body.Error != "":
		detail = body.Error + ": " + body.ErrorDescription
	case body.Error != "":
		detail = body.Error
	case body.Message != "":
		detail = body.Message
	}
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: retry after %ss", ErrRateLimited, retryAfter(resp, body))
	case status == http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, detail)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s", ErrInternalServerError, status, detail)
	default:
		return fmt.Errorf("discord responded %d: %s", status, detail)
	}
}

// retryAfter prefers the Retry-After header and falls back to the body.
func retryAfter(resp *resty.Response, body discordError) string {
	if header := resp.Header().Get("Retry-After"); header != "" {
		return header
	}
	if body.RetryAfter != nil {
		return strconv.FormatFloat(*body.RetryAfter, 'f', -1, 64)
	}
	return "?"
}

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
)

const (
	discordScope = "identify"

	discordAuthorizePath = "/oauth2/authorize"
	discordTokenPath     = "/oauth2/token"
	discordMePath        = "/users/@me"
)

type discordAdapter struct {
	client *utils.HTTPClient

	apiURL       string
	clientID     string
	clientSecret string
	redirectURI  string

	logger *logger.Logger
}

// NewDiscordAdapter constructs the Discord implementation of
// [OAuthProvider]. The API base URL is normalised the same way for the
// browser redirect and for server-to-server calls.
func NewDiscordAdapter(cfg config.Discord, logger *logger.Logger) (OAuthProvider, error) {
	apiURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid discord api url: %w", err)
	}

	return &discordAdapter{
		client:       utils.NewHTTPClient(apiURL, cfg.Timeout),
		apiURL:       apiURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// AuthorizeURL implements [OAuthProvider].
func (d *discordAdapter) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", d.clientID)
	q.Set("redirect_uri", d.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", discordScope)
	if state != "" {
		q.Set("state", state)
	}

	return d.apiURL + discordAuthorizePath + "?" + q.Encode()
}

// ExchangeCode implements [OAuthProvider]. It POSTs the code as a form to
// /oauth2/token with the application credentials.
func (d *discordAdapter) ExchangeCode(ctx context.Context, code string) (models.DiscordToken, error) {
	var token models.DiscordToken

	resp, err := d.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     d.clientID,
			"client_secret": d.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  d.redirectURI,
			"scope":         discordScope,
		}).
		SetResult(&token).
		Post(discordTokenPath)
	if err != nil {
		return models.DiscordToken{}, fmt.Errorf("exchange code request: %w", err)
	}
	if err = mapDiscordError(resp); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "discordAdapter.ExchangeCode").
			Int("status", resp.StatusCode()).
			Msg("discord rejected authorization code")
		return models.DiscordToken{}, err
	}
	if token.AccessToken == "" {
		return models.DiscordToken{}, ErrEmptyAccessToken
	}

	return token, nil
}

// GetCurrentUser implements [OAuthProvider].
func (d *discordAdapter) GetCurrentUser(ctx context.Context, accessToken string) (models.DiscordUser, error) {
	var user models.DiscordUser

	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		Get(discordMePath)
	if err != nil {
		return models.DiscordUser{}, fmt.Errorf("get current user request: %w", err)
	}
	if err = mapDiscordError(resp); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "discordAdapter.GetCurrentUser").
			Int("status", resp.StatusCode()).
			Msg("discord rejected profile request")
		return models.DiscordUser{}, err
	}
	if user.ID == "" || user.Username == "" {
		return models.DiscordUser{}, ErrEmptyProfile
	}

	return user, nil
}

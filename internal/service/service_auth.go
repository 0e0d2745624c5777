package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/adapter"
	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/models"
)

const clientCallbackPath = "/signin/callback"

// authService is the concrete implementation of AuthService.
// It delegates identity to the OAuth provider and keeps a local user record
// so passwords and 2FA settings can hang off the provider's user id.
type authService struct {
	// oauth is the identity provider used to exchange codes and load profiles.
	oauth adapter.OAuthProvider

	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// clientURL is the frontend origin that receives the token after login.
	clientURL string

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given provider and
// UserRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(oauth adapter.OAuthProvider, userRepository store.UserRepository, cfg config.StructuredConfig, logger *logger.Logger) AuthService {
	return &authService{
		oauth:          oauth,
		userRepository: userRepository,
		tokenSignKey:   cfg.App.TokenSignKey,
		tokenIssuer:    cfg.App.TokenIssuer,
		tokenDuration:  cfg.App.TokenDuration,
		clientURL:      strings.TrimRight(cfg.Server.ClientURL, "/"),
		now:            time.Now,
		logger:         logger,
	}
}

// LoginURL returns the provider authorization URL.
func (a *authService) LoginURL() string {
	return a.oauth.AuthorizeURL("")
}

// HandleCallback completes the OAuth authorization-code flow.
//
// A first login creates the user. A returning user whose avatar changed on
// the provider side gets it refreshed. Returns:
//   - ErrNoCodeReceived if code is empty.
//   - ErrOAuthFailed wrapping the adapter error if the provider rejects the
//     code or the profile request.
//   - A wrapped storage error if the user cannot be stored.
func (a *authService) HandleCallback(ctx context.Context, code string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return models.Token{}, ErrNoCodeReceived
	}

	discordToken, err := a.oauth.ExchangeCode(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "authService.HandleCallback").Msg("code exchange failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrOAuthFailed, err)
	}

	profile, err := a.oauth.GetCurrentUser(ctx, discordToken.AccessToken)
	if err != nil {
		log.Err(err).Str("func", "authService.HandleCallback").Msg("profile request failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrOAuthFailed, err)
	}

	user, err := a.upsertUser(ctx, profile)
	if err != nil {
		return models.Token{}, err
	}

	return a.CreateToken(ctx, user)
}

func (a *authService) upsertUser(ctx context.Context, profile models.DiscordUser) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("user_id", profile.ID).Logger()

	user, err := a.userRepository.FindUserByID(ctx, profile.ID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		created, err := a.userRepository.CreateUser(ctx, models.User{
			ID:        profile.ID,
			Username:  profile.Username,
			Avatar:    profile.Avatar,
			CreatedAt: a.now().UTC(),
		})
		if err != nil {
			log.Err(err).Msg("user creation ended with error")
			return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
		}
		log.Info().Msg("new user registered")
		return created, nil

	case err != nil:
		log.Err(err).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if user.Avatar != profile.Avatar {
		if err = a.userRepository.UpdateAvatar(ctx, user.ID, profile.Avatar); err != nil {
			log.Err(err).Msg("avatar update failed")
			return models.User{}, fmt.Errorf("avatar update failed: %w", err)
		}
		user.Avatar = profile.Avatar
	}

	return user, nil
}

// ClientRedirectURL returns <clientURL>/signin/callback?token=<jwt>.
func (a *authService) ClientRedirectURL(token models.Token) string {
	return a.clientURL + clientCallbackPath + "?" + url.Values{"token": {token.SignedString}}.Encode()
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Package oauth implements the external identity providers behind
// ports.IdentityProvider.
package oauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/openalgo/auth-system/internal/core/ports"
)

const googleIssuer = "https://accounts.google.com"

// exchangeTimeout bounds the outbound calls of a single login attempt. The
// attempt is not retried on failure.
const exchangeTimeout = 15 * time.Second

var googleScopes = []string{oidc.ScopeOpenID, "email", "profile"}

// GoogleProvider exchanges Google authorization codes for verified
// identities. Client credentials live in the mutable AuthSettings row, so the
// oauth2 config is assembled per call; only the issuer discovery is shared,
// and it runs lazily so the process can boot with Google auth disabled.
type GoogleProvider struct {
	redirectURL string

	mu       sync.Mutex
	provider *oidc.Provider
}

func NewGoogleProvider(redirectURL string) *GoogleProvider {
	return &GoogleProvider{redirectURL: redirectURL}
}

// AuthCodeURL builds the authorization redirect with offline access and a
// forced consent prompt.
func (p *GoogleProvider) AuthCodeURL(ctx context.Context, creds ports.OAuthCredentials, state string) (string, error) {
	provider, err := p.discover(ctx)
	if err != nil {
		return "", err
	}

	cfg := p.oauth2Config(provider, creds)
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Exchange trades the authorization code for tokens, verifies the returned
// id_token signature and audience against the client id, and confirms the
// email via the userinfo endpoint.
func (p *GoogleProvider) Exchange(ctx context.Context, creds ports.OAuthCredentials, code string) (*ports.ExternalIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()

	provider, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}

	cfg := p.oauth2Config(provider, creds)
	oauth2Token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("missing id_token in token response")
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: creds.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("parse id_token claims: %w", err)
	}

	// Profile fetch with the access token; its email wins when present.
	userInfo, err := provider.UserInfo(ctx, oauth2.StaticTokenSource(oauth2Token))
	if err == nil && userInfo.Email != "" {
		claims.Email = userInfo.Email
	}

	return &ports.ExternalIdentity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

func (p *GoogleProvider) discover(ctx context.Context) (*oidc.Provider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.provider != nil {
		return p.provider, nil
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover issuer: %w", err)
	}
	p.provider = provider
	return provider, nil
}

func (p *GoogleProvider) oauth2Config(provider *oidc.Provider, creds ports.OAuthCredentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  p.redirectURL,
		Scopes:       googleScopes,
	}
}

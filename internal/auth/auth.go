// Package auth bootstraps an authenticated Google Drive service from a local
// OAuth client credentials file and a persisted token file. When no usable
// token exists, the caller-supplied ConsentFunc receives the authorization
// URL and returns the code the operator obtained, keeping the package free of
// console assumptions.
package auth

import (
	"context"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/apkship/apkship/internal/errors"
	"github.com/apkship/apkship/internal/logging"
)

// ConsentFunc delivers the authorization URL to the operator and returns the
// authorization code they obtained by visiting it.
type ConsentFunc func(ctx context.Context, authURL string) (code string, err error)

// Authenticator produces authenticated Drive clients.
type Authenticator struct {
	config  *oauth2.Config
	tokens  *TokenStore
	consent ConsentFunc
	log     logging.Logger
}

// NewAuthenticator reads the OAuth client configuration from the JSON
// credentials file at credentialsPath, requesting Drive scope.
func NewAuthenticator(credentialsPath string, tokens *TokenStore, consent ConsentFunc, log logging.Logger) (*Authenticator, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, errors.NewIOError("failed to read credentials file", err)
	}
	config, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, errors.NewAuthError("failed to parse credentials file", err)
	}
	return &Authenticator{config: config, tokens: tokens, consent: consent, log: log}, nil
}

// Token returns the persisted token, running the consent flow when the token
// file is absent, unreadable, or holds an expired token that carries no
// refresh token. An expired token with a refresh token is returned as-is;
// the token source refreshes it on first use. A token obtained via consent
// is saved before it is returned.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.tokens.Load()
	if err == nil && (tok.Valid() || tok.RefreshToken != "") {
		return tok, nil
	}
	if err == nil {
		a.log.Info(ctx, "persisted token is stale and not refreshable, starting authorization flow")
	} else {
		a.log.Info(ctx, "no usable token, starting authorization flow")
	}

	authURL := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	code, err := a.consent(ctx, authURL)
	if err != nil {
		return nil, errors.NewAuthError("consent flow failed", err)
	}
	tok, err = a.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.NewAuthError("failed to exchange authorization code", err)
	}
	if err := a.tokens.Save(tok); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "authorization token saved")
	return tok, nil
}

// Client returns an HTTP client that attaches and auto-refreshes the OAuth
// token, persisting refreshed tokens back to the token file.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	src := newSavingTokenSource(a.config.TokenSource(ctx, tok), a.tokens, tok)
	return oauth2.NewClient(ctx, src), nil
}

// DriveService builds an authenticated Drive v3 service.
func (a *Authenticator) DriveService(ctx context.Context) (*drive.Service, error) {
	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.NewAuthError("failed to create drive service", err)
	}
	return service, nil
}

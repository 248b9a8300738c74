package auth

import (
	"encoding/json"
	"os"

	"golang.org/x/oauth2"

	"github.com/apkship/apkship/internal/errors"
)

// TokenStore loads and persists an OAuth token pair as a local JSON file.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load reads the token file. A missing or unreadable file wraps ErrIOError
// so callers can fall back to the interactive consent flow.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.NewIOError("failed to open token file", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, errors.NewIOError("failed to decode token file", err)
	}
	return tok, nil
}

// Save writes the token file, readable by the owner only.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return errors.NewIOError("failed to encode token", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.NewIOError("failed to write token file", err)
	}
	return nil
}

// savingTokenSource persists tokens whenever the wrapped source hands back a
// refreshed one, so the next run skips the consent flow.
type savingTokenSource struct {
	src   oauth2.TokenSource
	store *TokenStore
	last  string
}

var _ oauth2.TokenSource = (*savingTokenSource)(nil)

func newSavingTokenSource(src oauth2.TokenSource, store *TokenStore, current *oauth2.Token) *savingTokenSource {
	last := ""
	if current != nil {
		last = current.AccessToken
	}
	return &savingTokenSource{src: src, store: store, last: last}
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		if err := s.store.Save(tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

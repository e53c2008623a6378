package spotify

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/ports"
	"golang.org/x/oauth2"
)

// tokens this close to expiry are refreshed rather than reused
const tokenExpiryMargin = time.Minute

const tokenStoreTimeout = 5 * time.Second

// storeTokenSource serves tokens from a TokenStore and falls back to the
// wrapped source, saving whatever it issues.
type storeTokenSource struct {
	key   string
	store ports.TokenStore
	base  oauth2.TokenSource
	now   func() time.Time
}

func newStoreTokenSource(key string, store ports.TokenStore, base oauth2.TokenSource) *storeTokenSource {
	return &storeTokenSource{key: key, store: store, base: base, now: time.Now}
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenStoreTimeout)
	defer cancel()

	stored, err := s.store.LoadToken(ctx, s.key)
	switch {
	case err == nil && stored.Valid(s.now().Add(tokenExpiryMargin)):
		return &oauth2.Token{AccessToken: stored.Value, TokenType: stored.Type, Expiry: stored.Expiry}, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		log.Printf("WARN spotify adapter: token store read failed: %v", err)
	}

	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	fresh := domain.AccessToken{Value: tok.AccessToken, Type: tok.TokenType, Expiry: tok.Expiry}
	if err := s.store.SaveToken(ctx, s.key, fresh); err != nil {
		log.Printf("WARN spotify adapter: token store write failed: %v", err)
	}

	return tok, nil
}

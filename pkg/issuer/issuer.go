package issuer

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/apikeys/pkg/apikey"
	"github.com/dmitrymomot/apikeys/pkg/logger"
	"github.com/dmitrymomot/apikeys/pkg/secrets"
)

// Issuer issues and verifies keys for a single prefix with a fixed HMAC key.
// It is safe for concurrent use.
type Issuer struct {
	prefix string
	log    *slog.Logger

	mu      sync.RWMutex
	hmacKey []byte
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(i *Issuer) {
		if l != nil {
			i.log = l
		}
	}
}

// New validates cfg and returns an Issuer holding the decoded (or derived)
// HMAC key.
func New(cfg Config, opts ...Option) (*Issuer, error) {
	if err := apikey.ValidatePrefix(cfg.Prefix); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	key, err := secrets.DecodeKey(cfg.HMACKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.DeriveKey {
		derived, err := secrets.DeriveKey(key, cfg.Prefix)
		secrets.Clear(key)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		key = derived
	}

	return NewWithKey(cfg.Prefix, key, opts...)
}

// NewWithKey returns an Issuer for prefix using a raw 32-byte key. The
// Issuer keeps its own copy of key.
func NewWithKey(prefix string, key []byte, opts ...Option) (*Issuer, error) {
	if err := apikey.ValidatePrefix(prefix); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := secrets.ValidateKey(key); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	i := &Issuer{
		prefix:  prefix,
		hmacKey: append([]byte(nil), key...),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.log = i.log.With(logger.Component("issuer"), logger.KeyPrefix(prefix))

	return i, nil
}

// Prefix returns the namespace prefix of issued keys.
func (i *Issuer) Prefix() string {
	return i.prefix
}

// Issue creates a new key. The caller hands Key to the client and persists
// Server.
func (i *Issuer) Issue(ctx context.Context) (apikey.CreateResult, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.hmacKey == nil {
		return apikey.CreateResult{}, ErrClosed
	}

	res, err := apikey.Create(i.prefix, i.hmacKey)
	if err != nil {
		i.log.ErrorContext(ctx, "api key issuance failed", logger.Error(err))
		return apikey.CreateResult{}, err
	}

	i.log.InfoContext(ctx, "api key issued",
		logger.KeyID(res.Server.ID),
		logger.Outcome("issued"),
	)
	return res, nil
}

// ID validates a presented key and returns its identifier for verifier lookup.
func (i *Issuer) ID(ctx context.Context, key string) (string, error) {
	id, err := apikey.GetID(key)
	if err != nil {
		i.log.DebugContext(ctx, "malformed api key", logger.Error(err), logger.Outcome("malformed"))
		return "", err
	}
	return id, nil
}

// Verify checks a presented key against the stored verifier. Keys from another
// prefix are rejected with false, like any other mismatch.
func (i *Issuer) Verify(ctx context.Context, key string, verifier []byte, opts ...apikey.VerifyOption) (bool, error) {
	start := time.Now()

	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.hmacKey == nil {
		return false, ErrClosed
	}

	opts = append(slices.Clip(opts), apikey.WithPrefix(i.prefix))
	ok, err := apikey.Verify(key, verifier, i.hmacKey, opts...)
	switch {
	case errors.Is(err, apikey.ErrParse):
		i.log.DebugContext(ctx, "malformed api key", logger.Error(err), logger.Outcome("malformed"))
		return false, err
	case err != nil:
		i.log.WarnContext(ctx, "api key verification failed", logger.Error(err))
		return false, err
	}

	// the key passed Parse, so splitting it cannot fail
	prefix, id := splitKey(key)
	switch {
	case prefix != i.prefix:
		i.log.InfoContext(ctx, "api key rejected", logger.KeyID(id), logger.Outcome("foreign_prefix"))
	case !ok:
		i.log.InfoContext(ctx, "api key rejected",
			logger.KeyID(id),
			logger.Outcome("rejected"),
			logger.Duration(time.Since(start)),
		)
	default:
		i.log.DebugContext(ctx, "api key verified",
			logger.KeyID(id),
			logger.Outcome("verified"),
			logger.Duration(time.Since(start)),
		)
	}
	return ok, nil
}

// splitKey returns the prefix and id of a key that already passed Parse.
func splitKey(key string) (prefix, id string) {
	rest := key[:strings.LastIndexByte(key, '_')]
	sep := strings.LastIndexByte(rest, '_')
	return rest[:sep], rest[sep+1:]
}

// Close zeroes the HMAC key. Later calls to Issue and Verify return ErrClosed.
func (i *Issuer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	secrets.Clear(i.hmacKey)
	i.hmacKey = nil
	return nil
}

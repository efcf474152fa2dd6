package issuer

import (
	"github.com/dmitrymomot/apikeys/pkg/config"
)

// Config describes one key namespace.
type Config struct {
	// Prefix is embedded in every issued key. It is not required here so a
	// caller can set it after loading; New rejects an empty prefix.
	Prefix string `env:"APIKEY_PREFIX"`
	// HMACKey is the base64 encoded 32-byte server key.
	HMACKey string `env:"APIKEY_HMAC_KEY,required"`
	// DeriveKey treats HMACKey as a master key and derives the namespace key
	// from it with HKDF, using Prefix as the purpose.
	DeriveKey bool `env:"APIKEY_DERIVE_KEY" envDefault:"false"`
}

// LoadConfig reads Config from the environment.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

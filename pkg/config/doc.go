// Package config loads configuration structs from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for .env files. The default .env file in the
// working directory is read once per process when present; extra files can be
// passed with WithEnvFiles.
//
// # Usage
//
//	type IssuerConfig struct {
//	    Prefix  string `env:"APIKEY_PREFIX,required"`
//	    HMACKey string `env:"APIKEY_HMAC_KEY,required"`
//	}
//
//	var cfg IssuerConfig
//	if err := config.Load(&cfg, config.WithPrefix("BILLING_")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// matched with errors.Is.
package config

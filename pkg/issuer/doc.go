// Package issuer wraps apikey for a single key namespace: it owns the prefix
// and the server HMAC key, loads both from the environment and logs every
// issuance and verification outcome by key ID.
//
//	cfg, err := issuer.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	iss, err := issuer.New(cfg, issuer.WithLogger(logger.New()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer iss.Close()
//
//	res, _ := iss.Issue(ctx)
//	ok, _ := iss.Verify(ctx, res.Key, res.Server.Verifier)
//
// Environment variables: APIKEY_PREFIX, APIKEY_HMAC_KEY (base64, 32 bytes)
// and APIKEY_DERIVE_KEY. With APIKEY_DERIVE_KEY=true the configured key is a
// master key and the namespace key is derived from it per prefix.
package issuer

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/apikeys/pkg/apikey"
	"github.com/dmitrymomot/apikeys/pkg/config"
	"github.com/dmitrymomot/apikeys/pkg/environment"
	"github.com/dmitrymomot/apikeys/pkg/issuer"
	"github.com/dmitrymomot/apikeys/pkg/logger"
	"github.com/dmitrymomot/apikeys/pkg/secrets"
)

const usage = `usage: apikey <command> [flags]

commands:
  hmac-key                     generate a base64 HMAC key for APIKEY_HMAC_KEY
  create [-prefix p] [-o text|json|yaml]
                               issue a key using APIKEY_HMAC_KEY; -prefix
                               overrides APIKEY_PREFIX
  id <key>                     print the identifier of a key
  verify -verifier <base64> [-after RFC3339] [-before RFC3339] <key>
                               verify a key; exit status 1 when it does not match
`

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

type appConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitError
	}

	var app appConfig
	if err := config.Load(&app); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	log := logger.New(
		logger.WithEnvironment(environment.Parse(app.Env), "apikey"),
		logger.WithOutput(stderr),
		logger.WithLevel(slog.LevelWarn),
	)

	var err error
	code := exitOK
	switch args[0] {
	case "hmac-key":
		err = runHMACKey(stdout)
	case "create":
		err = runCreate(ctx, args[1:], stdout, log)
	case "id":
		err = runID(args[1:], stdout)
	case "verify":
		code, err = runVerify(ctx, args[1:], stdout, log)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitError
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return exitError
	}
	return code
}

func runHMACKey(stdout io.Writer) error {
	encoded, err := secrets.GenerateEncodedKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, encoded)
	return err
}

func runCreate(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	prefix := fs.String("prefix", "", "key prefix, overrides APIKEY_PREFIX")
	output := fs.String("o", "text", "output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := issuer.LoadConfig()
	if err != nil {
		return err
	}
	if *prefix != "" {
		cfg.Prefix = *prefix
	}
	iss, err := issuer.New(cfg, issuer.WithLogger(log))
	if err != nil {
		return err
	}
	defer iss.Close()

	res, err := iss.Issue(ctx)
	if err != nil {
		return err
	}
	return writeResult(stdout, *output, res)
}

func writeResult(w io.Writer, format string, res apikey.CreateResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := fmt.Fprintf(w, "key:       %s\nid:        %s\nverifier:  %s\ntimestamp: %s\n",
			res.Key,
			res.Server.ID,
			base64.StdEncoding.EncodeToString(res.Server.Verifier),
			res.Server.Timestamp.Format(time.RFC3339Nano),
		)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func runID(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("expected exactly one key")
	}
	id, err := apikey.GetID(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, id)
	return err
}

func runVerify(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) (int, error) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verifierFlag := fs.String("verifier", "", "base64 encoded verifier stored for the key")
	after := fs.String("after", "", "reject keys created before this RFC3339 time")
	before := fs.String("before", "", "reject keys created after this RFC3339 time")
	if err := fs.Parse(args); err != nil {
		return exitError, err
	}
	if fs.NArg() != 1 {
		return exitError, errors.New("expected exactly one key")
	}

	verifier, err := base64.StdEncoding.DecodeString(*verifierFlag)
	if err != nil {
		return exitError, fmt.Errorf("decode verifier: %w", err)
	}

	var opts []apikey.VerifyOption
	if *after != "" {
		t, err := time.Parse(time.RFC3339, *after)
		if err != nil {
			return exitError, fmt.Errorf("parse -after: %w", err)
		}
		opts = append(opts, apikey.WithIsAfter(t))
	}
	if *before != "" {
		t, err := time.Parse(time.RFC3339, *before)
		if err != nil {
			return exitError, fmt.Errorf("parse -before: %w", err)
		}
		opts = append(opts, apikey.WithIsBefore(t))
	}

	cfg, err := issuer.LoadConfig()
	if err != nil {
		return exitError, err
	}
	iss, err := issuer.New(cfg, issuer.WithLogger(log))
	if err != nil {
		return exitError, err
	}
	defer iss.Close()

	ok, err := iss.Verify(ctx, fs.Arg(0), verifier, opts...)
	if err != nil {
		return exitError, err
	}
	if !ok {
		fmt.Fprintln(stdout, "invalid")
		return exitMismatch, nil
	}
	fmt.Fprintln(stdout, "valid")
	return exitOK, nil
}

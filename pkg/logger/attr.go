package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute keys used across the module. Keeping them here keeps log
// queries stable.
const (
	KeyIDKey     = "key_id"
	KeyPrefixKey = "key_prefix"
	OutcomeKey   = "outcome"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// KeyID records the public identifier of an API key.
// If id is empty, it returns an empty Attr.
func KeyID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String(KeyIDKey, id)
}

// KeyPrefix records the namespace prefix of an API key.
func KeyPrefix(prefix string) slog.Attr {
	if prefix == "" {
		return slog.Attr{}
	}
	return slog.String(KeyPrefixKey, prefix)
}

// Outcome records the result of an operation, e.g. "issued" or "rejected".
func Outcome(outcome string) slog.Attr {
	return slog.String(OutcomeKey, outcome)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
